package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/repository/dao"
)

type mockUserDAO struct {
	mock.Mock
}

func (m *mockUserDAO) Insert(ctx context.Context, user dao.User) (dao.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(dao.User), args.Error(1)
}

func (m *mockUserDAO) FindByID(ctx context.Context, id uint) (dao.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dao.User), args.Error(1)
}

func (m *mockUserDAO) FindByNames(ctx context.Context, displayName, familyName string) (dao.User, error) {
	args := m.Called(ctx, displayName, familyName)
	return args.Get(0).(dao.User), args.Error(1)
}

func (m *mockUserDAO) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *mockUserDAO) UpdateAdmin(ctx context.Context, id uint, admin bool) (dao.User, error) {
	args := m.Called(ctx, id, admin)
	return args.Get(0).(dao.User), args.Error(1)
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	d := new(mockUserDAO)
	d.On("Insert", ctx, dao.User{DisplayName: "Alex", FamilyName: "Dupont", PINHash: "hashed"}).
		Return(dao.User{ID: 1, DisplayName: "Alex", FamilyName: "Dupont", PINHash: "hashed"}, nil)

	created, err := NewUserRepository(d).Create(ctx, domain.User{DisplayName: "Alex", FamilyName: "Dupont", PIN: "hashed"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), created.ID)
	assert.Equal(t, "hashed", created.PIN)
}

func TestUserRepository_Create_IdentityExists(t *testing.T) {
	ctx := context.Background()
	d := new(mockUserDAO)
	d.On("Insert", ctx, mock.Anything).Return(dao.User{}, dao.ErrIdentityExists)

	_, err := NewUserRepository(d).Create(ctx, domain.User{DisplayName: "alex", FamilyName: "dupont"})
	assert.ErrorIs(t, err, ErrIdentityExists)
}

func TestPublicUser_DropsPINHash(t *testing.T) {
	u := publicUser(dao.User{ID: 3, DisplayName: "Ana", PINHash: "secret"})
	assert.Empty(t, u.PIN)
	assert.Equal(t, "Ana", u.DisplayName)
}
