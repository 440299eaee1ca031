package dto

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// NewUserResponse convierte la entidad descartando el hash de contraseña.
func NewUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{ID: u.ID, Name: u.Name, Surname: u.Surname, Email: u.Email}
}

func NewProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Available:   p.Available,
		Category:    p.Category,
	}
}

// NewProductList nunca devuelve nil para que el JSON sea [] y no null.
func NewProductList(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *NewProductResponse(p))
	}
	return out
}

func NewSaleResponse(s *entity.Sale) *SaleResponse {
	if s == nil {
		return nil
	}
	lines := make([]SaleLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, SaleLineResponse{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	return &SaleResponse{ID: s.ID, UserID: s.UserID, Date: s.Date, Total: s.Total, Lines: lines}
}

func NewSaleList(list []*entity.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *NewSaleResponse(s))
	}
	return out
}
