package memory

import (
	"context"
	"sync"

	"github.com/fmcg-app/catalog-api/internal/core/domain"
	"github.com/fmcg-app/catalog-api/internal/core/query"
)

type UserRepository struct {
	mu    sync.RWMutex
	users []*domain.User // insertion order
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOfUsername(user.Username) >= 0 {
		return nil, domain.ErrUserExists
	}

	stored := *user
	stored.ID = newID()
	r.users = append(r.users, &stored)

	out := stored
	return &out, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOfUsername(username)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	out := *r.users[i]
	return &out, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOfID(id)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	return withoutHash(r.users[i]), nil
}

func (r *UserRepository) Find(_ context.Context, q query.UserQuery) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		if q.Filter.Matches(u) {
			out = append(out, withoutHash(u))
		}
	}
	sortRecords(out, q.Sort, func(a, b *domain.User, field string) bool {
		if field == "role" {
			return a.Role < b.Role
		}
		return a.Username < b.Username
	})
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, id string, upd domain.UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOfID(id)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	u := r.users[i]

	if upd.Username != nil && *upd.Username != u.Username {
		if r.indexOfUsername(*upd.Username) >= 0 {
			return nil, domain.ErrUserExists
		}
		u.Username = *upd.Username
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	u.UpdatedAt = upd.UpdatedAt

	return withoutHash(u), nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOfID(id)
	if i < 0 {
		return domain.ErrUserNotFound
	}
	r.users = append(r.users[:i], r.users[i+1:]...)
	return nil
}

func (r *UserRepository) indexOfUsername(username string) int {
	for i, u := range r.users {
		if u.Username == username {
			return i
		}
	}
	return -1
}

func (r *UserRepository) indexOfID(id string) int {
	for i, u := range r.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func withoutHash(u *domain.User) *domain.User {
	out := *u
	out.PasswordHash = ""
	return &out
}
