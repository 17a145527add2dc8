package usecase

import (
	"context"
	"testing"
	"time"

	"mitienda-backend/internal/domain"
	"mitienda-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorefrontAPI struct {
	authResult *domain.AuthResult
	authErr    error

	products []domain.Product
	product  *domain.Product
	listErr  error

	listCalls int
	getCalls  int
}

func (f *fakeStorefrontAPI) Login(_ context.Context, _, _ string) (*domain.AuthResult, error) {
	return f.authResult, f.authErr
}

func (f *fakeStorefrontAPI) Register(_ context.Context, _, _, _ string) (*domain.AuthResult, error) {
	return f.authResult, f.authErr
}

func (f *fakeStorefrontAPI) ListProducts(_ context.Context) ([]domain.Product, error) {
	f.listCalls++
	return f.products, f.listErr
}

func (f *fakeStorefrontAPI) GetProduct(_ context.Context, _ string) (*domain.Product, error) {
	f.getCalls++
	return f.product, f.listErr
}

func TestAuthLogin(t *testing.T) {
	utils.SetSecret("test-secret")

	t.Run("opens a session and returns a signed token", func(t *testing.T) {
		api := &fakeStorefrontAPI{authResult: &domain.AuthResult{
			Token: "upstream-bearer",
			User:  domain.User{ID: "u1", Name: "Ana", Email: "ana@example.com"},
		}}
		store := newFakeSessionStore()
		u := NewAuthUsecase(api, store, time.Hour)

		token, user, err := u.Login(context.Background(), "ana@example.com", "secret")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "u1", user.ID)

		// Exactly one session, holding the upstream token server-side
		require.Len(t, store.sessions, 1)
		for _, sess := range store.sessions {
			assert.Equal(t, "upstream-bearer", sess.Token)
			assert.NotContains(t, token, sess.Token)
		}
	})

	t.Run("rejects empty credentials without calling upstream", func(t *testing.T) {
		u := NewAuthUsecase(&fakeStorefrontAPI{}, newFakeSessionStore(), time.Hour)
		_, _, err := u.Login(context.Background(), "", "secret")
		require.Error(t, err)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})

	t.Run("propagates upstream rejection", func(t *testing.T) {
		api := &fakeStorefrontAPI{authErr: domain.NewUpstreamError("invalid credentials")}
		u := NewAuthUsecase(api, newFakeSessionStore(), time.Hour)
		_, _, err := u.Login(context.Background(), "ana@example.com", "wrong")
		require.Error(t, err)
		assert.Equal(t, domain.KindUpstream, domain.KindOf(err))
	})
}

func TestAuthLogout(t *testing.T) {
	utils.SetSecret("test-secret")

	api := &fakeStorefrontAPI{authResult: &domain.AuthResult{
		Token: "upstream-bearer",
		User:  domain.User{ID: "u1", Email: "ana@example.com"},
	}}
	store := newFakeSessionStore()
	u := NewAuthUsecase(api, store, time.Hour)

	_, _, err := u.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	require.Len(t, store.sessions, 1)

	for id := range store.sessions {
		u.Logout(id)
	}
	assert.Empty(t, store.sessions)
}
