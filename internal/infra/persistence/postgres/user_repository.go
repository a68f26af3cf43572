// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"taskhub/internal/domain/entity"
	domainerrors "taskhub/internal/domain/errors"
	"taskhub/internal/domain/repository"
	"taskhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db: db,
	}
}

// CreateUser persists a new user together with its credential and a
// default preference row in one transaction.
func (repo *userRepository) CreateUser(ctx context.Context, user *entity.User, passwordHash string) error {
	userM := &model.UserModel{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: passwordHash,
	}

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(userM).Error; err != nil {
			return err
		}

		prefsM := &model.UserPreferenceModel{
			UserID:              userM.ID,
			NotificationEnabled: true,
			ReminderEnabled:     true,
		}

		return tx.Create(prefsM).Error
	})
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// FindUserByID retrieves a user by its unique ID.
func (repo *userRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by ID")
	}

	return toUserDomain(&userM), nil
}

// FindCredentialByEmail retrieves the stored credential for a login email.
func (repo *userRepository) FindCredentialByEmail(ctx context.Context, email string) (*entity.UserCredential, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find credential by email")
	}

	return &entity.UserCredential{
		UserID:       userM.ID,
		Email:        userM.Email,
		PasswordHash: userM.PasswordHash,
	}, nil
}

// FindPreferences retrieves the notification and sync preferences of a user.
func (repo *userRepository) FindPreferences(ctx context.Context, userID uuid.UUID) (*entity.UserPreferences, error) {
	var prefsM model.UserPreferenceModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&prefsM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find preferences")
	}

	return toPreferencesDomain(&prefsM), nil
}

// UpdatePreferences overwrites the notification preferences of a user.
// LastSyncTime is excluded; it only moves through UpdateLastSyncTime.
func (repo *userRepository) UpdatePreferences(ctx context.Context, prefs *entity.UserPreferences) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserPreferenceModel{}).
		Where("user_id = ?", prefs.UserID).
		Updates(map[string]any{
			"notification_enabled": prefs.NotificationEnabled,
			"reminder_enabled":     prefs.ReminderEnabled,
			"quiet_hours_start":    prefs.QuietHoursStart,
			"quiet_hours_end":      prefs.QuietHoursEnd,
			"updated_at":           time.Now(),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update preferences")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// UpdateLastSyncTime records the instant of the most recent reconcile.
func (repo *userRepository) UpdateLastSyncTime(ctx context.Context, userID uuid.UUID, syncedAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserPreferenceModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"last_sync_time": syncedAt,
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update last sync time")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:        data.ID,
		Email:     data.Email,
		Name:      data.Name,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// toPreferencesDomain converts a GORM UserPreferenceModel to a domain UserPreferences entity.
func toPreferencesDomain(data *model.UserPreferenceModel) *entity.UserPreferences {
	if data == nil {
		return nil
	}

	return &entity.UserPreferences{
		UserID:              data.UserID,
		NotificationEnabled: data.NotificationEnabled,
		ReminderEnabled:     data.ReminderEnabled,
		QuietHoursStart:     data.QuietHoursStart,
		QuietHoursEnd:       data.QuietHoursEnd,
		LastSyncTime:        data.LastSyncTime,
		UpdatedAt:           data.UpdatedAt,
	}
}
