package services

import (
	"context"
	"testing"

	"studytrack/backend/models"
	"studytrack/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.topics.Create(ctx, f.alice, TopicRequest{Name: "Vectors", Subject: "linear_algebra", Difficulty: 1})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = f.topics.Create(ctx, f.teacher, TopicRequest{Name: "Limits", Subject: "calculus", Difficulty: 1})
	assert.ErrorIs(t, err, utils.ErrConflict)

	vectors, err := f.topics.Create(ctx, f.teacher, TopicRequest{Name: "Vectors", Description: "Vector spaces", Subject: "linear_algebra", Difficulty: 3, EstimatedTime: 4})
	require.NoError(t, err)

	all, err := f.topics.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Limits", all[0].Name)

	calculus, err := f.topics.List(ctx, "calculus", "")
	require.NoError(t, err)
	require.Len(t, calculus, 1)
	assert.Equal(t, "Limits", calculus[0].Name)

	found, err := f.topics.List(ctx, "", "SPACES")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, vectors.ID, found[0].ID)

	updated, err := f.topics.Update(ctx, f.teacher, vectors.ID, TopicUpdate{Difficulty: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Difficulty)
	assert.Equal(t, "Vector spaces", updated.Description)

	_, err = f.topics.Update(ctx, f.teacher, vectors.ID, TopicUpdate{Name: stringPtr("Limits")})
	assert.ErrorIs(t, err, utils.ErrConflict)

	_, err = f.topics.Update(ctx, f.alice, vectors.ID, TopicUpdate{Difficulty: intPtr(1)})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	require.NoError(t, f.topics.Delete(ctx, f.teacher, vectors.ID))
	_, err = f.topics.Get(ctx, vectors.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	err = f.topics.Delete(ctx, f.teacher, vectors.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestTopicDeleteRestrictedByProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.progress.Start(ctx, f.alice, ProgressCreate{TopicID: f.limits.ID, Status: models.StatusInProgress})
	require.NoError(t, err)

	err = f.topics.Delete(ctx, f.teacher, f.limits.ID)
	assert.ErrorIs(t, err, utils.ErrConflict)
}

func TestTopicProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.progress.Start(ctx, f.alice, ProgressCreate{TopicID: f.limits.ID, Status: models.StatusInProgress})
	require.NoError(t, err)
	_, err = f.progress.Start(ctx, f.bob, ProgressCreate{TopicID: f.limits.ID, Status: models.StatusCompleted})
	require.NoError(t, err)

	report, err := f.topics.Progress(ctx, f.teacher, f.limits.ID)
	require.NoError(t, err)
	assert.Equal(t, "Limits", report.Topic.Name)
	require.Len(t, report.Progress, 2)
	assert.Equal(t, f.alice.ID, report.Progress[0].StudentID)

	_, err = f.topics.Progress(ctx, f.alice, f.limits.ID)
	assert.ErrorIs(t, err, utils.ErrForbidden)
}
