package services_test

import (
	"log"
	"os"
	"testing"
	"time"

	"akun/internal/apperr"
	"akun/internal/models"
	"akun/internal/repositories"
	"akun/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Find(filter repositories.UserFilter) ([]models.User, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishUserRegistered(event map[string]interface{}) error {
	args := m.Called(event)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func notFound(value string) error {
	return apperr.Wrap(apperr.ErrNotFound, "user %s not found", value)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockPub := new(MockEventPublisher)
	authService := services.NewAuthService(mockRepo, mockPub, "test_jwt_secret")

	user := &models.User{
		Username: "testuser",
		Email:    "Test@Example.com",
		Password: "password123",
		Phone:    "1234567890",
		City:     "Jakarta",
		Country:  "Indonesia",
		Role:     models.RoleStaff,
	}

	// Successful registration: email is lower-cased, password hashed,
	// registration event published.
	mockRepo.On("GetByUsername", "testuser").Return(nil, notFound("testuser")).Once()
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, notFound("test@example.com")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
	mockPub.On("PublishUserRegistered", mock.Anything).Return(nil).Once()

	err := authService.RegisterUser(user)
	assert.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)

	// Username already taken
	mockRepo.On("GetByUsername", "testuser").Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(user)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Contains(t, err.Error(), "username 'testuser' already taken")
	mockRepo.AssertExpectations(t)

	// Email already registered
	mockRepo.On("GetByUsername", "testuser").Return(nil, notFound("testuser")).Once()
	mockRepo.On("GetByEmail", "test@example.com").Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(user)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Contains(t, err.Error(), "email 'test@example.com' already registered")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_PublishFailureDoesNotFail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockPub := new(MockEventPublisher)
	authService := services.NewAuthService(mockRepo, mockPub, "test_jwt_secret")

	mockRepo.On("GetByUsername", mock.Anything).Return(nil, notFound("x")).Once()
	mockRepo.On("GetByEmail", mock.Anything).Return(nil, notFound("x")).Once()
	mockRepo.On("Create", mock.Anything).Return(nil).Once()
	mockPub.On("PublishUserRegistered", mock.Anything).Return(assert.AnError).Once()

	err := authService.RegisterUser(&models.User{
		Username: "eventless",
		Email:    "eventless@example.com",
		Password: "password123",
		Role:     models.RoleStaff,
	})
	assert.NoError(t, err)
	mockPub.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, nil, "test_jwt_secret")

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleStaff,
	}

	// Successful login by username
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	loggedIn, token, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	// The token carries the subject id and role with a 1h expiry
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test_jwt_secret"), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["sub"])
	assert.Equal(t, models.RoleStaff, claims["role"])
	exp := int64(claims["exp"].(float64))
	iat := int64(claims["iat"].(float64))
	assert.Equal(t, int64(time.Hour/time.Second), exp-iat)
	mockRepo.AssertExpectations(t)

	// Login by email falls back when the username lookup misses,
	// case-insensitively.
	mockRepo.On("GetByUsername", "Test@Example.com").Return(nil, notFound("Test@Example.com")).Once()
	mockRepo.On("GetByEmail", "test@example.com").Return(user, nil).Once()
	_, token, err = authService.LoginUser("Test@Example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	mockRepo.AssertExpectations(t)

	// Wrong password
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	_, _, errWrongPassword := authService.LoginUser("testuser", "wrongpassword")
	assert.ErrorIs(t, errWrongPassword, apperr.ErrInvalidCredentials)

	// Unknown identifier
	mockRepo.On("GetByUsername", "nonexistentuser").Return(nil, notFound("nonexistentuser")).Once()
	mockRepo.On("GetByEmail", "nonexistentuser").Return(nil, notFound("nonexistentuser")).Once()
	_, _, errUnknownUser := authService.LoginUser("nonexistentuser", "password123")
	assert.ErrorIs(t, errUnknownUser, apperr.ErrInvalidCredentials)

	// Both failures are indistinguishable
	assert.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, nil, "test_jwt_secret")

	// Valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-123",
		"role": models.RoleAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	})
	validTokenString, _ := token.SignedString([]byte("test_jwt_secret"))

	identity, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", identity.ID)
	assert.Equal(t, models.RoleAdmin, identity.Role)

	// Malformed token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	// Wrong signing secret
	forged, _ := token.SignedString([]byte("some_other_secret"))
	_, err = authService.ValidateToken(forged)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	// Expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-123",
		"role": models.RoleStaff,
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte("test_jwt_secret"))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	// Token missing identity claims
	bareToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	bareTokenString, _ := bareToken.SignedString([]byte("test_jwt_secret"))
	_, err = authService.ValidateToken(bareTokenString)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}
