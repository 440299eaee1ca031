package users

import (
	"context"
	"sort"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// UserUseCase administración de usuarios registrados.
type UserUseCase struct {
	userRepo repository.UserRepository
	saleRepo repository.SaleRepository
	log      *logger.Logger
}

func NewUserUseCase(userRepo repository.UserRepository, saleRepo repository.SaleRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, saleRepo: saleRepo, log: log.Component("usuarios")}
}

// List devuelve los usuarios ordenados por ID, sin contraseñas.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *dto.NewUserResponse(u))
	}
	return out, nil
}

// Delete borra un usuario sin ventas. Con ventas devuelve *domain.UserHasSalesError.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	sales, err := uc.saleRepo.ListByUser(ctx, id)
	if err != nil {
		return err
	}
	if len(sales) > 0 {
		ids := make([]int64, 0, len(sales))
		for _, s := range sales {
			ids = append(ids, s.ID)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		return &domain.UserHasSalesError{UserID: id, SaleIDs: ids}
	}

	if err := uc.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("usuario_id", id).Msg("usuario eliminado")
	return nil
}
