package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkrasnov/backoffice/internal/domain"
	internal_errors "github.com/dkrasnov/backoffice/internal/errors"
)

type MockUserStorage struct {
	UsersFunc         func() ([]domain.User, error)
	UserFunc          func(id string) (domain.User, error)
	SaveUserFunc      func(user domain.User) (domain.User, error)
	UpdateUserFunc    func(user domain.User) (domain.User, error)
	SetUserActiveFunc func(id string, active bool) (domain.User, error)
	DeleteUserFunc    func(id string) (domain.User, error)
}

func (m *MockUserStorage) Users() ([]domain.User, error) {
	if m.UsersFunc != nil {
		return m.UsersFunc()
	}
	return nil, nil
}

func (m *MockUserStorage) User(id string) (domain.User, error) {
	if m.UserFunc != nil {
		return m.UserFunc(id)
	}
	return domain.User{Id: id}, nil
}

func (m *MockUserStorage) SaveUser(user domain.User) (domain.User, error) {
	if m.SaveUserFunc != nil {
		return m.SaveUserFunc(user)
	}
	user.Id = "u-new"
	return user, nil
}

func (m *MockUserStorage) UpdateUser(user domain.User) (domain.User, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(user)
	}
	return user, nil
}

func (m *MockUserStorage) SetUserActive(id string, active bool) (domain.User, error) {
	if m.SetUserActiveFunc != nil {
		return m.SetUserActiveFunc(id, active)
	}
	return domain.User{Id: id, IsActive: active}, nil
}

func (m *MockUserStorage) DeleteUser(id string) (domain.User, error) {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(id)
	}
	return domain.User{Id: id}, nil
}

func TestUserCreate(t *testing.T) {
	t.Run("hashes password before storing", func(t *testing.T) {
		var stored domain.User
		svc := NewUser(&MockUserStorage{SaveUserFunc: func(user domain.User) (domain.User, error) {
			stored = user
			user.Id = "u-new"
			return user, nil
		}})

		created, err := svc.Create(UserParams{Email: "new@b.com", Password: "secret1", FirstName: "A", LastName: "B", Role: domain.RoleUser})

		require.NoError(t, err)
		assert.NotEqual(t, "secret1", stored.PassHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PassHash), []byte("secret1")))
		assert.True(t, stored.IsActive, "new accounts start active")
		assert.Empty(t, created.PassHash)
	})

	t.Run("missing password rejected", func(t *testing.T) {
		svc := NewUser(&MockUserStorage{})

		_, err := svc.Create(UserParams{Email: "new@b.com"})

		require.Error(t, err)
		assert.True(t, internal_errors.IsConflict(err))
	})

	t.Run("conflict bubbles with specific message", func(t *testing.T) {
		conflict := &internal_errors.ErrorWithStatusCode{Message: "Email is already registered", StatusCode: http.StatusBadRequest}
		svc := NewUser(&MockUserStorage{SaveUserFunc: func(user domain.User) (domain.User, error) {
			return domain.User{}, conflict
		}})

		_, err := svc.Create(UserParams{Email: "dup@b.com", Password: "secret1"})

		assert.Equal(t, conflict, err)
	})
}

func TestUserUpdate(t *testing.T) {
	t.Run("empty password keeps stored hash", func(t *testing.T) {
		var stored domain.User
		svc := NewUser(&MockUserStorage{UpdateUserFunc: func(user domain.User) (domain.User, error) {
			stored = user
			return user, nil
		}})

		_, err := svc.Update("u-1", UserParams{Email: "a@b.com", FirstName: "A", LastName: "B"})

		require.NoError(t, err)
		assert.Empty(t, stored.PassHash)
	})

	t.Run("new password is rehashed", func(t *testing.T) {
		var stored domain.User
		svc := NewUser(&MockUserStorage{UpdateUserFunc: func(user domain.User) (domain.User, error) {
			stored = user
			return user, nil
		}})

		_, err := svc.Update("u-1", UserParams{Email: "a@b.com", Password: "newpass1"})

		require.NoError(t, err)
		require.NotEmpty(t, stored.PassHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PassHash), []byte("newpass1")))
	})
}

func TestUserDelete(t *testing.T) {
	t.Run("locked user cannot be deleted", func(t *testing.T) {
		var deleteCalled bool
		svc := NewUser(&MockUserStorage{
			UserFunc: func(id string) (domain.User, error) {
				return domain.User{Id: id, IsLocked: true}, nil
			},
			DeleteUserFunc: func(id string) (domain.User, error) {
				deleteCalled = true
				return domain.User{}, nil
			},
		})

		_, err := svc.Delete("u-1")

		require.Error(t, err)
		assert.True(t, internal_errors.IsConflict(err))
		assert.False(t, deleteCalled)
	})

	t.Run("missing user is a 404", func(t *testing.T) {
		notFound := &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		svc := NewUser(&MockUserStorage{UserFunc: func(id string) (domain.User, error) {
			return domain.User{}, notFound
		}})

		_, err := svc.Delete("missing")

		assert.True(t, internal_errors.IsNotFound(err))
	})
}

func TestUsersSanitized(t *testing.T) {
	svc := NewUser(&MockUserStorage{UsersFunc: func() ([]domain.User, error) {
		return []domain.User{{Id: "u-1", PassHash: "hash"}, {Id: "u-2", PassHash: "hash"}}, nil
	}})

	users, err := svc.Users()

	require.NoError(t, err)
	for _, u := range users {
		assert.Empty(t, u.PassHash)
	}
}
