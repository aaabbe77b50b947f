package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/learnflow-api/internal/domain/entity"
	apperrors "github.com/yourusername/learnflow-api/internal/pkg/errors"
	"github.com/yourusername/learnflow-api/pkg/auth"
)

func testJWTService(t *testing.T) *auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService("test-secret-key", 1)
	require.NoError(t, err)
	return svc
}

func TestAuthService_Register_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "alice@test.io").Return(nil, apperrors.ErrNotFound)
	mockUserRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.User).ID = 1
	})

	svc := NewAuthService(mockUserRepo, testJWTService(t))

	// Act
	user, token, err := svc.Register("  Alice@Test.io ", "password123", " Alice ")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice@test.io", user.Email, "Email нормализуется к нижнему регистру")
	assert.Equal(t, "Alice", user.DisplayName)
	assert.NotEmpty(t, token)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "alice@test.io").Return(&entity.User{ID: 1, Email: "alice@test.io"}, nil)

	svc := NewAuthService(mockUserRepo, testJWTService(t))

	// Act
	user, token, err := svc.Register("alice@test.io", "password123", "")

	// Assert
	assert.Nil(t, user)
	assert.Empty(t, token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	mockUserRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), testJWTService(t))

	_, _, err := svc.Register("alice@test.io", "short", "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestAuthService_Login_Success(t *testing.T) {
	// Arrange
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "alice@test.io").Return(&entity.User{
		ID:       1,
		Email:    "alice@test.io",
		Password: string(hashed),
	}, nil)

	svc := NewAuthService(mockUserRepo, testJWTService(t))

	// Act
	user, token, err := svc.Login("alice@test.io", "password123")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	// Arrange
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "alice@test.io").Return(&entity.User{
		ID:       1,
		Email:    "alice@test.io",
		Password: string(hashed),
	}, nil)

	svc := NewAuthService(mockUserRepo, testJWTService(t))

	// Act
	user, token, err := svc.Login("alice@test.io", "wrong-password")

	// Assert
	assert.Nil(t, user)
	assert.Empty(t, token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestAuthService_Login_UnknownEmailHidden(t *testing.T) {
	// Arrange: несуществующий email дает ту же ошибку, что и неверный пароль
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByEmail", "ghost@test.io").Return(nil, apperrors.ErrNotFound)

	svc := NewAuthService(mockUserRepo, testJWTService(t))

	// Act
	_, _, err := svc.Login("ghost@test.io", "password123")

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized), "Существование email не раскрывается")
	assert.NotContains(t, err.Error(), "not found")
}

func TestAuthService_Refresh_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByID", uint(5)).Return(&entity.User{ID: 5, Email: "alice@test.io"}, nil)

	svc := NewAuthService(mockUserRepo, testJWTService(t))

	// Act
	user, token, err := svc.Refresh(5)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, uint(5), user.ID)
	assert.NotEmpty(t, token, "Должен быть выпущен новый токен")
}

func TestAuthService_Refresh_DeletedUser(t *testing.T) {
	// Arrange: токен еще действителен, но аккаунт уже удален
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("GetByID", uint(9)).Return(nil, apperrors.ErrNotFound)

	svc := NewAuthService(mockUserRepo, testJWTService(t))

	// Act
	user, token, err := svc.Refresh(9)

	// Assert
	assert.Nil(t, user)
	assert.Empty(t, token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}
