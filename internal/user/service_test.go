package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store implementation for tests
type fakeStore struct {
	byEmail map[string]*User
	byID    map[uuid.UUID]*User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byEmail: make(map[string]*User),
		byID:    make(map[uuid.UUID]*User),
	}
}

func (s *fakeStore) Create(ctx context.Context, fullname, email, passwordHash string) (*User, error) {
	if _, exists := s.byEmail[email]; exists {
		return nil, ErrDuplicateEmail
	}
	u := &User{
		ID:           uuid.New(),
		Fullname:     fullname,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.byEmail[email] = u
	s.byID[u.ID] = u
	return u, nil
}

func (s *fakeStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	tests := []struct {
		name     string
		fullname string
		email    string
		password string
		wantErr  error
	}{
		{"missing fullname", "", "jane@example.com", "longenough1", ErrFullnameRequired},
		{"missing email", "Jane", "", "longenough1", ErrEmailRequired},
		{"missing password", "Jane", "jane@example.com", "", ErrPasswordRequired},
		{"short password", "Jane", "jane@example.com", "short", ErrPasswordTooShort},
		{"seven chars is still short", "Jane", "jane@example.com", "1234567", ErrPasswordTooShort},
		{"malformed email", "Jane", "not-an-email", "longenough1", ErrInvalidEmailFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.fullname, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	created, err := svc.Register(ctx, "Jane", "jane@example.com", "longenough1")
	require.NoError(t, err)
	assert.Equal(t, "Jane", created.Fullname)
	assert.Equal(t, "jane@example.com", created.Email)
	assert.NotEqual(t, "longenough1", created.PasswordHash)

	loggedIn, err := svc.Login(ctx, "jane@example.com", "longenough1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, loggedIn.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Jane", "jane@example.com", "longenough1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Jane", "jane@example.com", "different1")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// the original account is untouched
	assert.Len(t, store.byEmail, 1)
	u, err := store.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Jane", u.Fullname)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Jane", "jane@example.com", "longenough1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "jane@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Login(context.Background(), "nobody@example.com", "longenough1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginMissingFields(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetByID(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	created, err := svc.Register(ctx, "Jane", "jane@example.com", "longenough1")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)

	_, err = svc.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
