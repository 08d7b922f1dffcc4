package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	GetUserByID(ctx context.Context, id int) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	UserExists(ctx context.Context, username, email string) (bool, error)
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
}

type AuthService struct {
	users     UserStore
	jwtSecret []byte
}

func NewAuthService(users UserStore, jwtSecret string) *AuthService {
	return &AuthService{users: users, jwtSecret: []byte(jwtSecret)}
}

type JwtCustomClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

// Authenticate verifies email and password. Unknown users and wrong
// passwords both come back as ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", ErrValidation)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		logger.Error().Err(err).Msg("Error looking up user for login")
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Register creates a new non-admin user. Fails without creating a row
// when any field is missing, the password is too short, or the
// username/email is already taken.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("all fields are required: %w", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	exists, err := s.users.UserExists(ctx, username, email)
	if err != nil {
		logger.Error().Err(err).Msg("Error checking for existing user")
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating user")
		return nil, err
	}

	return created, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

// IssueToken signs a 24h HS256 token for API clients.
func (s *AuthService) IssueToken(user *entity.User) (string, error) {
	claims := &JwtCustomClaims{
		Name:  user.Username,
		Email: user.Email,
		Admin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
