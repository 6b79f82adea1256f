package services

import (
	"context"
	"errors"

	"studytrack/backend/config"
	"studytrack/backend/models"
	"studytrack/backend/utils"

	"gorm.io/gorm"
)

type UserService struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Policy Policy
}

func NewUserService(db *gorm.DB, cfg *config.Config) *UserService {
	return &UserService{
		DB:     db,
		Cfg:    cfg,
		Policy: Policy{AllowSelfPromotion: cfg.AllowSelfPromotion},
	}
}

// GetByUsername returns the user or a NotFoundError.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return findUser(s.DB.WithContext(ctx), username)
}

// Get returns an account the actor is allowed to see.
func (s *UserService) Get(ctx context.Context, actor *models.User, username string) (*models.User, error) {
	if err := s.Policy.CanManage(actor, username, "view"); err != nil {
		return nil, err
	}
	return s.GetByUsername(ctx, username)
}

// Register creates an enabled, non-teacher account. Username and email must
// both be unused.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureAvailable(tx, "username", user.Username, 0); err != nil {
			return err
		}
		if err := ensureAvailable(tx, "email", user.Email, 0); err != nil {
			return err
		}
		if err := tx.Create(&user).Error; err != nil {
			if isDuplicate(err) {
				return utils.NewConflictError("Username or email already registered")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks credentials. Every failure is an AuthError; the
// disabled check runs only after the password matched.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.NewAuthError("Incorrect username or password")
		}
		return nil, err
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, utils.NewAuthError("Incorrect username or password")
	}
	if user.Disabled {
		return nil, utils.NewAuthError("Account is disabled")
	}
	return user, nil
}

// IssueToken signs an access token whose subject is the username.
func (s *UserService) IssueToken(user *models.User) (string, error) {
	return utils.GenerateJWTToken(user.Username, s.Cfg.AccessTokenTTL, s.Cfg)
}

// CurrentUser resolves the subject of a verified token.
func (s *UserService) CurrentUser(ctx context.Context, subject string) (*models.User, error) {
	user, err := s.GetByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.NewInvalidTokenError("Could not validate credentials")
		}
		return nil, err
	}
	if user.Disabled {
		return nil, utils.NewAuthError("Account is disabled")
	}
	return user, nil
}

// Update applies the supplied fields of in to targetUsername. The read and the
// write happen in one transaction.
func (s *UserService) Update(ctx context.Context, actor *models.User, targetUsername string, in UserUpdate) (*models.User, error) {
	if err := s.Policy.CanManage(actor, targetUsername, "update"); err != nil {
		return nil, err
	}
	if err := s.Policy.CanPromote(actor, in.IsTeacher); err != nil {
		return nil, err
	}

	var hash string
	if in.Password != nil {
		var err error
		if hash, err = utils.HashPassword(*in.Password); err != nil {
			return nil, err
		}
	}

	var user *models.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = findUser(forUpdate(tx), targetUsername); err != nil {
			return err
		}

		if in.Email != nil && *in.Email != user.Email {
			if err := ensureAvailable(tx, "email", *in.Email, user.ID); err != nil {
				return err
			}
			user.Email = *in.Email
		}
		if in.FullName != nil {
			user.FullName = *in.FullName
		}
		if in.Password != nil {
			user.PasswordHash = hash
		}
		if in.Disabled != nil {
			user.Disabled = *in.Disabled
		}
		if in.IsTeacher != nil {
			user.IsTeacher = *in.IsTeacher
		}

		if err := tx.Save(user).Error; err != nil {
			if isDuplicate(err) {
				return utils.NewConflictError("Email already registered")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account together with its progress records.
func (s *UserService) Delete(ctx context.Context, actor *models.User, targetUsername string) error {
	if err := s.Policy.CanManage(actor, targetUsername, "delete"); err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findUser(forUpdate(tx), targetUsername)
		if err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", user.ID).Delete(&models.Progress{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

func findUser(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, utils.NewNotFoundError("User not found")
		}
		return nil, err
	}
	return &user, nil
}

// ensureAvailable fails with a ConflictError when another user already holds
// value in column.
func ensureAvailable(tx *gorm.DB, column, value string, exceptID uint) error {
	query := tx.Model(&models.User{}).Where(column+" = ?", value)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		switch column {
		case "username":
			return utils.NewConflictError("Username already registered")
		case "email":
			return utils.NewConflictError("Email already registered")
		}
		return utils.NewConflictError(column + " already registered")
	}
	return nil
}
