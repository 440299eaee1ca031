package jsonfile

import (
	"context"
	"strings"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository usuarios en usuarios.json.
type UserRepository struct {
	s *Store
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{s: s}
}

// Create valida unicidad de email y asigna max+1 bajo el mismo lock que la escritura.
func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var max int64
	for _, rec := range r.s.users {
		if strings.EqualFold(rec.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
		if rec.ID == u.ID && u.ID != 0 {
			return domain.ErrConflict
		}
		if rec.ID > max {
			max = rec.ID
		}
	}
	rec := toUserRecord(u)
	if rec.ID == 0 {
		rec.ID = max + 1
	}

	next := append(append([]userRecord(nil), r.s.users...), rec)
	if err := r.s.write(usersFile, next); err != nil {
		return domain.Persistence("guardar usuario", err)
	}
	r.s.users = next
	u.ID = rec.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.users {
		if rec.ID == id {
			return rec.entity(), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.users {
		if strings.EqualFold(rec.Email, email) {
			return rec.entity(), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, rec := range r.s.users {
		out = append(out, rec.entity())
	}
	return out, nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	next := make([]userRecord, 0, len(r.s.users))
	for _, rec := range r.s.users {
		if rec.ID != id {
			next = append(next, rec)
		}
	}
	if len(next) == len(r.s.users) {
		return domain.ErrUserNotFound
	}
	if err := r.s.write(usersFile, next); err != nil {
		return domain.Persistence("eliminar usuario", err)
	}
	r.s.users = next
	return nil
}
