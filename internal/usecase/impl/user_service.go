// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "taskhub/internal/delivery/context"
	"taskhub/internal/domain/entity"
	domainerrors "taskhub/internal/domain/errors"
	"taskhub/internal/domain/repository"
	"taskhub/internal/domain/service"
	"taskhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterUser orchestrates the complete user registration process.
func (srv *userService) RegisterUser(ctx context.Context, input usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	now := time.Now()
	user := &entity.User{
		ID:        uuid.New(),
		Email:     input.Email,
		Name:      input.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := srv.userRepo.CreateUser(ctx, user, passwordHash); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domainerrors.ErrUserAlreadyExists
		}
		srv.log(ctx).Error("Failed to create user", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", user.ID))

	return &usecase.RegisterOutput{User: user}, nil
}

// Login verifies the credentials and issues a token pair.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	credential, err := srv.userRepo.FindCredentialByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same outcome as a wrong password so login probing cannot
			// enumerate registered emails.
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find credential")
	}

	if !srv.hasher.Check(input.Password, credential.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	user, err := srv.userRepo.FindUserByID(ctx, credential.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	srv.log(ctx).Info("Login successful", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// GetPreferences returns the user's notification preferences.
func (srv *userService) GetPreferences(ctx context.Context, userID uuid.UUID) (*entity.UserPreferences, error) {
	prefs, err := srv.userRepo.FindPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find preferences")
	}

	return prefs, nil
}

// UpdatePreferences replaces the user's notification preferences.
func (srv *userService) UpdatePreferences(ctx context.Context, userID uuid.UUID, input *usecase.PreferencesInput) (*entity.UserPreferences, error) {
	if err := validateQuietHours(input.QuietHoursStart, input.QuietHoursEnd); err != nil {
		return nil, err
	}

	prefs := &entity.UserPreferences{
		UserID:              userID,
		NotificationEnabled: input.NotificationEnabled,
		ReminderEnabled:     input.ReminderEnabled,
		QuietHoursStart:     input.QuietHoursStart,
		QuietHoursEnd:       input.QuietHoursEnd,
		UpdatedAt:           time.Now(),
	}

	if err := srv.userRepo.UpdatePreferences(ctx, prefs); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to update preferences")
	}

	return prefs, nil
}

// validateQuietHours checks that the quiet-hours bounds are a valid pair:
// either both absent or both present with hours in [0, 23].
func validateQuietHours(start, end *int) error {
	if (start == nil) != (end == nil) {
		return domainerrors.ErrInvalidQuietHours.WrapMessage("quiet hours require both start and end")
	}
	if start != nil && (*start < 0 || *start > 23) {
		return domainerrors.ErrInvalidQuietHours
	}
	if end != nil && (*end < 0 || *end > 23) {
		return domainerrors.ErrInvalidQuietHours
	}

	return nil
}
