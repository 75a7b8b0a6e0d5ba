package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ojtlog/internal/auth"
	apperrors "ojtlog/internal/errors"
	"ojtlog/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByResetToken(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) DeleteCascade(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockDispatcher is a mock implementation of notify.Dispatcher.
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		displayName   string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:        "successful registration",
			email:       "test@example.com",
			password:    "password123",
			displayName: "Test User",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:        "email is lowercased before lookup",
			email:       "Mixed@Example.COM",
			password:    "password123",
			displayName: "Mixed Case",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "mixed@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:        "user already exists",
			email:       "existing@example.com",
			password:    "password123",
			displayName: "Existing User",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.setupMock(userRepo)

			svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore), new(MockDispatcher), "http://localhost")
			user, err := svc.Register(context.Background(), tt.email, tt.password, tt.displayName, "")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
			}
			userRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
	assert.NoError(t, err)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMocks    func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMocks: func(u *MockUserRepository, ts *MockTokenStore) {
				u.On("FindByEmail", mock.Anything, "test@example.com").
					Return(&model.User{ID: 1, Email: "test@example.com", PasswordHash: string(hash)}, nil)
				ts.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), uint(1), "test@example.com", auth.RefreshTokenExpiry).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "missing@example.com",
			password: "password123",
			setupMocks: func(u *MockUserRepository, ts *MockTokenStore) {
				u.On("FindByEmail", mock.Anything, "missing@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrong",
			setupMocks: func(u *MockUserRepository, ts *MockTokenStore) {
				u.On("FindByEmail", mock.Anything, "test@example.com").
					Return(&model.User{ID: 1, Email: "test@example.com", PasswordHash: string(hash)}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tokenStore := new(MockTokenStore)
			tt.setupMocks(userRepo, tokenStore)

			svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), tokenStore, new(MockDispatcher), "http://localhost")
			accessToken, refreshToken, user, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.Equal(t, "test@example.com", user.Email)
			}
			userRepo.AssertExpectations(t)
			tokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	t.Run("unknown email is silently accepted", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		dispatcher := new(MockDispatcher)
		userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore), dispatcher, "http://localhost")
		err := svc.RequestPasswordReset(context.Background(), "ghost@example.com")

		assert.NoError(t, err)
		dispatcher.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("known email stores token and dispatches link", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		dispatcher := new(MockDispatcher)
		user := &model.User{ID: 7, Email: "tech@example.com"}
		userRepo.On("FindByEmail", mock.Anything, "tech@example.com").Return(user, nil)
		userRepo.On("Update", mock.Anything, user).Return(nil)
		dispatcher.On("Send", mock.Anything, "tech@example.com", "Password Reset", mock.AnythingOfType("string")).Return(nil)

		svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore), dispatcher, "http://localhost")
		err := svc.RequestPasswordReset(context.Background(), "tech@example.com")

		assert.NoError(t, err)
		assert.NotNil(t, user.ResetToken)
		assert.NotNil(t, user.ResetTokenExpiresAt)
		dispatcher.AssertExpectations(t)
	})

	t.Run("delivery failure does not fail the request", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		dispatcher := new(MockDispatcher)
		user := &model.User{ID: 7, Email: "tech@example.com"}
		userRepo.On("FindByEmail", mock.Anything, "tech@example.com").Return(user, nil)
		userRepo.On("Update", mock.Anything, user).Return(nil)
		dispatcher.On("Send", mock.Anything, "tech@example.com", "Password Reset", mock.AnythingOfType("string")).
			Return(assert.AnError)

		svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore), dispatcher, "http://localhost")
		err := svc.RequestPasswordReset(context.Background(), "tech@example.com")

		assert.NoError(t, err)
		assert.NotNil(t, user.ResetToken)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	token := "11111111-2222-3333-4444-555555555555"
	future := time.Now().Add(30 * time.Minute)
	past := time.Now().Add(-time.Minute)

	t.Run("valid token resets password and clears token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := &model.User{ID: 7, Email: "tech@example.com", ResetToken: &token, ResetTokenExpiresAt: &future}
		userRepo.On("FindByResetToken", mock.Anything, token).Return(user, nil)
		userRepo.On("Update", mock.Anything, user).Return(nil)

		svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore), new(MockDispatcher), "http://localhost")
		err := svc.ResetPassword(context.Background(), token, "new-password-1")

		assert.NoError(t, err)
		assert.Nil(t, user.ResetToken)
		assert.Nil(t, user.ResetTokenExpiresAt)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-password-1")))
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := &model.User{ID: 7, Email: "tech@example.com", ResetToken: &token, ResetTokenExpiresAt: &past}
		userRepo.On("FindByResetToken", mock.Anything, token).Return(user, nil)

		svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore), new(MockDispatcher), "http://localhost")
		err := svc.ResetPassword(context.Background(), token, "new-password-1")

		assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByResetToken", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

		svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore), new(MockDispatcher), "http://localhost")
		err := svc.ResetPassword(context.Background(), "nope", "new-password-1")

		assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
	})
}
