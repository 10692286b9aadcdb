package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pf-responses/respuestas-api/internal/models"
	"github.com/pf-responses/respuestas-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when inserting the user row fails for a reason other than a duplicate.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateProfile is returned when inserting the profile row fails inside the signup transaction.
	ErrCreateProfile = errors.New("user repository: create profile failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateWithProfile creates a user and its optional profile atomically.
func (r *GormUserRepository) CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			if utils.IsDuplicateKeyError(err) {
				return ErrDuplicateEntry
			}
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		if profile == nil {
			return nil
		}

		profile.UserID = user.ID
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateProfile, err)
		}
		user.Profile = profile

		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Profile").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("nombre_usuario = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateLastLogin stamps the user's last successful login
func (r *GormUserRepository) UpdateLastLogin(ctx context.Context, id uint64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

// Delete removes a user and everything the user owns in a transaction
func (r *GormUserRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		answerIDs := tx.Model(&models.Answer{}).Select("id").Where("usuario_id = ?", id)

		// Tag links of the user's answers
		if err := tx.Where("respuesta_id IN (?)", answerIDs).Delete(&models.AnswerTag{}).Error; err != nil {
			return err
		}

		// Answers
		if err := tx.Where("usuario_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return err
		}

		// Profile
		if err := tx.Where("usuario_id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
