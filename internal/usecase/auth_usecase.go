package usecase

import (
	"context"
	"time"

	"mitienda-backend/internal/domain"
	"mitienda-backend/pkg/logger"
	"mitienda-backend/pkg/utils"

	"github.com/google/uuid"
)

// AuthUsecase proxies credentials to the internal storefront API and, on
// success, opens a server-side session. The client only ever sees our own
// signed token; the upstream bearer token stays inside the session.
type AuthUsecase struct {
	api        domain.StorefrontAPI
	sessions   domain.SessionStore
	sessionTTL time.Duration
}

func NewAuthUsecase(api domain.StorefrontAPI, sessions domain.SessionStore, sessionTTL time.Duration) *AuthUsecase {
	return &AuthUsecase{
		api:        api,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.NewValidationError("email and password are required")
	}

	result, err := u.api.Login(ctx, email, password)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("email", email).Msg("login rejected")
		return "", nil, err
	}
	return u.openSession(ctx, result)
}

func (u *AuthUsecase) Register(ctx context.Context, name, email, password string) (string, *domain.User, error) {
	if name == "" || email == "" || password == "" {
		return "", nil, domain.NewValidationError("name, email and password are required")
	}

	result, err := u.api.Register(ctx, name, email, password)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("email", email).Msg("registration rejected")
		return "", nil, err
	}
	return u.openSession(ctx, result)
}

func (u *AuthUsecase) openSession(ctx context.Context, result *domain.AuthResult) (string, *domain.User, error) {
	sess := &domain.Session{
		ID:        uuid.New().String(),
		Token:     result.Token,
		User:      result.User,
		CreatedAt: time.Now(),
	}
	u.sessions.Set(sess)

	token, err := utils.GenerateJWT(sess.ID, result.User.Email, u.sessionTTL)
	if err != nil {
		u.sessions.Delete(sess.ID)
		return "", nil, err
	}

	logger.WithContext(ctx).Info().Str("user_id", result.User.ID).Msg("session opened")
	return token, &sess.User, nil
}

func (u *AuthUsecase) Logout(sessionID string) {
	u.sessions.Delete(sessionID)
}
