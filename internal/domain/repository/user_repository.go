package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create persiste el usuario. Si user.ID es 0 el almacén asigna max(ids)+1 (1 si está vacío)
	// y lo escribe en user.ID. La unicidad del email la garantiza el almacén: ErrEmailAlreadyExists.
	Create(ctx context.Context, user *entity.User) error
	// GetByID y GetByEmail devuelven (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	// Delete devuelve ErrUserNotFound si el usuario no existe.
	Delete(ctx context.Context, id int64) error
}
