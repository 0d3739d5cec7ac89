package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"nysc-services/internal/config"
	"nysc-services/internal/domain"
	"nysc-services/internal/mocks"
	"nysc-services/internal/service/auth"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
		AdminEmail:       "admin@nyscplatform.com",
		AdminPassword:    "super-secure",
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "ada@example.com",
		PasswordHash: string(hash),
		Role:         string(domain.RoleCustomer),
		IsActive:     true,
	}

	t.Run("Success issues token pair", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		mockSessions := new(mocks.SessionRepository)
		svc := auth.NewService(mockUsers, mockSessions, testConfig())

		mockUsers.On("GetByEmail", ctx, "ada@example.com").Return(user, nil).Once()
		mockSessions.On("Create", ctx, mock.Anything).Return(nil).Once()

		got, tokens, err := svc.Login(ctx, domain.LoginInput{
			Email:    "ada@example.com",
			Password: "correct-password",
		})

		assert.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)

		claims, err := svc.ValidateAccessToken(tokens.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, string(domain.RoleCustomer), claims.Role)
	})

	t.Run("Wrong password", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		svc := auth.NewService(mockUsers, new(mocks.SessionRepository), testConfig())

		mockUsers.On("GetByEmail", ctx, "ada@example.com").Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{
			Email:    "ada@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		svc := auth.NewService(mockUsers, new(mocks.SessionRepository), testConfig())

		mockUsers.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	svc := auth.NewService(new(mocks.UserRepository), new(mocks.SessionRepository), testConfig())

	_, err := svc.ValidateAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("Seeds admin when absent", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		svc := auth.NewService(mockUsers, new(mocks.SessionRepository), testConfig())

		mockUsers.On("ExistsByEmail", ctx, "admin@nyscplatform.com").Return(false, nil).Once()
		mockUsers.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "admin@nyscplatform.com" &&
				u.Role == string(domain.RoleAdmin) &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("super-secure")) == nil
		})).Return(nil).Once()

		assert.NoError(t, svc.EnsureAdmin(ctx))
		mockUsers.AssertExpectations(t)
	})

	t.Run("No-op when admin exists", func(t *testing.T) {
		mockUsers := new(mocks.UserRepository)
		svc := auth.NewService(mockUsers, new(mocks.SessionRepository), testConfig())

		mockUsers.On("ExistsByEmail", ctx, "admin@nyscplatform.com").Return(true, nil).Once()

		assert.NoError(t, svc.EnsureAdmin(ctx))
		mockUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
