package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	byEmail map[string]*entity.User
	nextID  int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*entity.User), nextID: 1}
}

func (s *fakeUserStore) GetUserByID(_ context.Context, id int) (*entity.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (s *fakeUserStore) UserExists(_ context.Context, username, email string) (bool, error) {
	if _, ok := s.byEmail[email]; ok {
		return true, nil
	}
	for _, u := range s.byEmail {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) CreateUser(_ context.Context, user *entity.User) (*entity.User, error) {
	u := *user
	u.ID = s.nextID
	s.nextID++
	s.byEmail[u.Email] = &u
	return &u, nil
}

func TestRegisterHashesPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, "test-secret")

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.IsAdmin)

	stored := store.byEmail["alice@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "hunter22", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("hunter22")))
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), "test-secret")

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{"missing username", "", "a@example.com", "password", ErrValidation},
		{"missing email", "alice", "", "password", ErrValidation},
		{"missing password", "alice", "a@example.com", "", ErrValidation},
		{"short password", "alice", "a@example.com", "12345", ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, "test-secret")

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "other@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Register(context.Background(), "other", "alice@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestAuthenticate(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, "test-secret")

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	// Unknown email and wrong password are indistinguishable.
	_, errUnknown := svc.Authenticate(context.Background(), "nobody@example.com", "hunter22")
	_, errWrongPass := svc.Authenticate(context.Background(), "alice@example.com", "wrong-password")
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestAuthenticateMissingFields(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), "test-secret")

	_, err := svc.Authenticate(context.Background(), "", "password")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Authenticate(context.Background(), "a@example.com", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIssueTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), "test-secret")

	signed, err := svc.IssueToken(&entity.User{ID: 42, Username: "alice", Email: "alice@example.com", IsAdmin: true})
	require.NoError(t, err)

	claims := &JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	assert.Equal(t, "alice", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.True(t, claims.Admin)
	assert.Equal(t, "42", claims.Subject)
}

func TestGetUserByIDNotFound(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), "test-secret")

	_, err := svc.GetUserByID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
}
