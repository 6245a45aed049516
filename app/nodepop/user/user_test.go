package user_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/nodepop/app/nodepop/user"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := user.HashPassword("1234")
	require.NoError(t, err)
	assert.NotEqual(t, "1234", hash)
	assert.Contains(t, hash, "$10$")

	assert.True(t, user.ComparePassword(hash, "1234"))
	assert.False(t, user.ComparePassword(hash, "12345"))
	assert.False(t, user.ComparePassword("not-a-hash", "1234"))
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "admin@example.com", user.NormalizeEmail("  Admin@Example.COM "))
}

func TestUser_JSONHidesPassword(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(user.User{Email: "a@b.c", PasswordHash: "secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret")
	assert.Contains(t, string(b), `"email":"a@b.c"`)
}

func TestService(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := user.NewService(user.NewMemoryRepository())

	created, err := svc.Register(ctx, " Admin@Example.com", "1234")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", created.Email)
	assert.False(t, created.ID.IsZero())

	_, err = svc.Register(ctx, "admin@example.com", "other")
	assert.ErrorIs(t, err, user.ErrEmailTaken)

	_, err = svc.Register(ctx, "empty@example.com", "")
	assert.ErrorIs(t, err, user.ErrEmptyPassword)

	tests := []struct {
		name     string
		email    string
		password string
		err      error
	}{
		{"valid", "admin@example.com", "1234", nil},
		{"email case and spaces", " ADMIN@example.com ", "1234", nil},
		{"wrong password", "admin@example.com", "4321", user.ErrInvalidCredentials},
		{"unknown email", "nobody@example.com", "1234", user.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			u, err := svc.Authenticate(ctx, tt.email, tt.password)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, created.ID, u.ID)
		})
	}
}

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockRepository) FindByID(ctx context.Context, id bson.ObjectID) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestService_Authenticate_RepositoryError(t *testing.T) {
	t.Parallel()

	errDB := errors.New("server selection timeout")
	repo := &mockRepository{}
	repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(user.User{}, errDB)

	_, err := user.NewService(repo).Authenticate(context.Background(), "Admin@example.com", "1234")
	assert.ErrorIs(t, err, errDB)
	assert.NotErrorIs(t, err, user.ErrInvalidCredentials)
	repo.AssertExpectations(t)
}

func TestMemoryRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := user.NewMemoryRepository()

	u, err := repo.Create(ctx, user.User{Email: "user1@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)

	_, err = repo.FindByID(ctx, bson.NewObjectID())
	assert.ErrorIs(t, err, user.ErrNotFound)

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.FindByEmail(ctx, "user1@example.com")
	assert.ErrorIs(t, err, user.ErrNotFound)
}
