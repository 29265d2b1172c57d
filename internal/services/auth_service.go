package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"akun/internal/apperr"
	"akun/internal/models"
	"akun/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// Identity is the resolved caller of a protected request.
type Identity struct {
	ID   string
	Role string
}

// EventPublisher publishes account lifecycle events to the message
// broker. A nil publisher disables publishing.
type EventPublisher interface {
	PublishUserRegistered(event map[string]interface{}) error
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	publisher  EventPublisher
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, publisher EventPublisher, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		publisher:  publisher,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: time.Hour,
	}
}

// RegisterUser registers a new account: rejects duplicate usernames and
// emails, hashes the password and persists the record. The caller
// passes the plaintext password in user.Password; it is replaced with
// the bcrypt hash before the record is stored.
func (s *AuthService) RegisterUser(user *models.User) error {
	// Emails are stored and compared lower-cased so uniqueness and
	// login are case-insensitive.
	user.Email = strings.ToLower(user.Email)

	if existing, err := s.userRepo.GetByUsername(user.Username); err == nil && existing != nil {
		return apperr.Wrap(apperr.ErrConflict, "username '%s' already taken", user.Username)
	} else if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return apperr.Wrap(apperr.ErrInternal, "failed to check username: %v", err)
	}
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return apperr.Wrap(apperr.ErrConflict, "email '%s' already registered", user.Email)
	} else if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return apperr.Wrap(apperr.ErrInternal, "failed to check email: %v", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Wrap(apperr.ErrInternal, "failed to hash password: %v", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Create(user); err != nil {
		return apperr.Wrap(apperr.ErrInternal, "failed to register user: %v", err)
	}

	// Event publishing is best-effort and never fails registration.
	// The event carries no password material.
	if s.publisher != nil {
		event := map[string]interface{}{
			"userID":   user.ID,
			"username": user.Username,
			"role":     user.Role,
		}
		if err := s.publisher.PublishUserRegistered(event); err != nil {
			log.Printf("Warning: failed to publish registered event for user %s: %v", user.ID, err)
		}
	}
	return nil
}

// LoginUser authenticates by username or email plus password and
// returns the account and a signed session token. Unknown identifiers
// and wrong passwords report the same error so callers cannot probe
// which field was wrong.
func (s *AuthService) LoginUser(identifier, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByUsername(identifier)
	if err != nil {
		user, err = s.userRepo.GetByEmail(strings.ToLower(identifier))
	}
	if err != nil {
		return nil, "", apperr.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperr.ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  now.Add(s.tokenDurat).Unix(),
		"iat":  now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.ErrInternal, "failed to generate token: %v", err)
	}

	return user, tokenString, nil
}

// ValidateToken parses and validates a session token, returning the
// identity it proves. Expired, malformed and forged tokens all fail
// with Unauthenticated.
func (s *AuthService) ValidateToken(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.Wrap(apperr.ErrUnauthenticated, "unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return Identity{}, apperr.Wrap(apperr.ErrUnauthenticated, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, apperr.Wrap(apperr.ErrUnauthenticated, "invalid token")
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return Identity{}, apperr.Wrap(apperr.ErrUnauthenticated, "invalid token claims")
	}
	return Identity{ID: sub, Role: role}, nil
}

// TokenDuration reports how long issued tokens stay valid. Handlers
// use it to align the session cookie expiry with the token expiry.
func (s *AuthService) TokenDuration() time.Duration {
	return s.tokenDurat
}
