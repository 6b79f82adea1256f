package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"studytrack/backend/config"
	"studytrack/backend/models"
	"studytrack/backend/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory sqlite database for one test.
func newTestDB(t *testing.T) (*gorm.DB, *config.Config) {
	t.Helper()

	cfg := config.Default()
	cfg.DBDriver = "sqlite"
	cfg.DBPath = fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	cfg.JWTSecret = "testsecret"

	db, err := utils.InitDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db, cfg
}

func boolPtr(v bool) *bool { return &v }

func stringPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }

func statusPtr(v models.ProgressStatus) *models.ProgressStatus { return &v }

func mustRegister(t *testing.T, svc *UserService, username string, teacher bool) *models.User {
	t.Helper()

	user, err := svc.Register(context.Background(), RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		FullName: strings.ToUpper(username[:1]) + username[1:],
		Password: "pw-" + username,
	})
	require.NoError(t, err)
	if teacher {
		// Registration never grants the role; seed it directly.
		require.NoError(t, svc.DB.Model(user).Update("is_teacher", true).Error)
		user.IsTeacher = true
	}
	return user
}

func intPtr(v int) *int { return &v }
