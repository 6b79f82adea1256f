package services

import (
	"context"
	"strings"
	"testing"

	"studytrack/backend/models"
	"studytrack/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewUserService(db, cfg)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{
		Username: "alice",
		Email:    "a@x.com",
		FullName: "Alice",
		Password: "pw1",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.False(t, user.Disabled)
	assert.False(t, user.IsTeacher)
	assert.NotEqual(t, "pw1", user.PasswordHash)
	assert.True(t, utils.CheckPassword(user.PasswordHash, "pw1"))

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterRequest{
			Username: "alice",
			Email:    "other@x.com",
			FullName: "Other Alice",
			Password: "pw2",
		})
		assert.ErrorIs(t, err, utils.ErrConflict)
		assert.Equal(t, "Username already registered", err.Error())
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterRequest{
			Username: "alice2",
			Email:    "a@x.com",
			FullName: "Alice Again",
			Password: "pw2",
		})
		assert.ErrorIs(t, err, utils.ErrConflict)
	})
}

func TestRegisterPasswordTooLong(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewUserService(db, cfg)

	// 40 two-byte runes: under 72 characters, over 72 bytes.
	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "mallory",
		Email:    "m@x.com",
		FullName: "Mallory",
		Password: strings.Repeat("é", 40),
	})
	assert.ErrorIs(t, err, utils.ErrValidation)

	_, err = svc.GetByUsername(context.Background(), "mallory")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestAuthenticate(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewUserService(db, cfg)
	ctx := context.Background()
	alice := mustRegister(t, svc, "alice", false)

	user, err := svc.Authenticate(ctx, "alice", "pw-alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, utils.ErrAuth)

	_, err = svc.Authenticate(ctx, "nobody", "pw-alice")
	assert.ErrorIs(t, err, utils.ErrAuth)

	_, err = svc.Update(ctx, alice, "alice", UserUpdate{Disabled: boolPtr(true)})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "alice", "pw-alice")
	assert.ErrorIs(t, err, utils.ErrAuth)
	assert.Equal(t, "Account is disabled", err.Error())
}

func TestIssueTokenAndCurrentUser(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewUserService(db, cfg)
	ctx := context.Background()
	alice := mustRegister(t, svc, "alice", false)

	token, err := svc.IssueToken(alice)
	require.NoError(t, err)

	subject, err := utils.ParseJWTToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)

	user, err := svc.CurrentUser(ctx, subject)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)

	_, err = svc.CurrentUser(ctx, "ghost")
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestSelfUpdateIsPartial(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewUserService(db, cfg)
	ctx := context.Background()
	alice := mustRegister(t, svc, "alice", false)

	updated, err := svc.Update(ctx, alice, "alice", UserUpdate{Email: stringPtr("x@y.com")})
	require.NoError(t, err)
	assert.Equal(t, "x@y.com", updated.Email)

	stored, err := svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "x@y.com", stored.Email)
	assert.Equal(t, "Alice", stored.FullName)
	assert.False(t, stored.Disabled)
	assert.False(t, stored.IsTeacher)
	assert.True(t, utils.CheckPassword(stored.PasswordHash, "pw-alice"))
}

func TestSelfUpdatePassword(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewUserService(db, cfg)
	ctx := context.Background()
	alice := mustRegister(t, svc, "alice", false)

	_, err := svc.Update(ctx, alice, "alice", UserUpdate{Password: stringPtr("new-pw")})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "alice", "pw-alice")
	assert.ErrorIs(t, err, utils.ErrAuth)
	_, err = svc.Authenticate(ctx, "alice", "new-pw")
	assert.NoError(t, err)
}

func TestUpdateEmailConflict(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewUserService(db, cfg)
	alice := mustRegister(t, svc, "alice", false)
	mustRegister(t, svc, "bob", false)

	_, err := svc.Update(context.Background(), alice, "alice", UserUpdate{Email: stringPtr("bob@example.com")})
	assert.ErrorIs(t, err, utils.ErrConflict)
}

func TestSelfPromotion(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewUserService(db, cfg)
	ctx := context.Background()
	alice := mustRegister(t, svc, "alice", false)

	updated, err := svc.Update(ctx, alice, "alice", UserUpdate{IsTeacher: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, updated.IsTeacher)

	svc.Policy.AllowSelfPromotion = false
	bob := mustRegister(t, svc, "bob", false)
	_, err = svc.Update(ctx, bob, "bob", UserUpdate{IsTeacher: boolPtr(true)})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	// A teacher can still grant the role.
	teacher, err := svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	updated, err = svc.Update(ctx, teacher, "bob", UserUpdate{IsTeacher: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, updated.IsTeacher)
}

func TestCrossUserRules(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewUserService(db, cfg)
	ctx := context.Background()
	student := mustRegister(t, svc, "student", false)
	teacher := mustRegister(t, svc, "teacher", true)
	mustRegister(t, svc, "other", false)

	_, err := svc.Update(ctx, student, "other", UserUpdate{FullName: stringPtr("Hacked")})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	// Forbidden is reported even for a target that does not exist.
	_, err = svc.Update(ctx, student, "ghost", UserUpdate{})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	err = svc.Delete(ctx, student, "other")
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = svc.Get(ctx, student, "other")
	assert.ErrorIs(t, err, utils.ErrForbidden)

	updated, err := svc.Update(ctx, teacher, "other", UserUpdate{Disabled: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Disabled)
	assert.Equal(t, "Other", updated.FullName)

	_, err = svc.Update(ctx, teacher, "ghost", UserUpdate{Disabled: boolPtr(true)})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	err = svc.Delete(ctx, teacher, "ghost")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, teacher, "other"))
	_, err = svc.GetByUsername(ctx, "other")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestDeleteRemovesProgress(t *testing.T) {
	db, cfg := newTestDB(t)
	svc := NewUserService(db, cfg)
	ctx := context.Background()
	teacher := mustRegister(t, svc, "teacher", true)
	alice := mustRegister(t, svc, "alice", false)

	topics := NewTopicService(db, svc.Policy)
	topic, err := topics.Create(ctx, teacher, TopicRequest{Name: "Limits", Subject: "calculus", Difficulty: 1, EstimatedTime: 2})
	require.NoError(t, err)

	progress := NewProgressService(db, svc.Policy)
	_, err = progress.Start(ctx, alice, ProgressCreate{TopicID: topic.ID, Status: models.StatusInProgress})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, alice, "alice"))

	var count int64
	require.NoError(t, db.Model(&models.Progress{}).Where("student_id = ?", alice.ID).Count(&count).Error)
	assert.Zero(t, count)

	// With the progress gone the topic can be removed again.
	assert.NoError(t, topics.Delete(ctx, teacher, topic.ID))
}
