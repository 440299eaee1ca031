package jsonfile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// number guarda un decimal como número JSON (10.5), igual que los archivos existentes.
type number decimal.Decimal

func (n number) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

func (n *number) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*n = number(d)
	return nil
}

type userRecord struct {
	ID       int64  `json:"id"`
	Name     string `json:"nombre"`
	Surname  string `json:"apellido,omitempty"`
	Email    string `json:"email"`
	Password string `json:"contraseña"`
}

type productRecord struct {
	ID          int64  `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"desc"`
	Price       number `json:"precio"`
	Image       string `json:"imagen"`
	Available   bool   `json:"disponible"`
	Category    string `json:"tipo"`
}

type saleRecord struct {
	ID     int64        `json:"id"`
	UserID int64        `json:"id_usuario"`
	Date   time.Time    `json:"fecha"`
	Total  number       `json:"total"`
	Lines  []lineRecord `json:"productos"`
}

type lineRecord struct {
	ProductID int64  `json:"id_producto"`
	Quantity  int    `json:"cantidad"`
	UnitPrice number `json:"precio_unitario"`
}

func toUserRecord(u *entity.User) userRecord {
	return userRecord{ID: u.ID, Name: u.Name, Surname: u.Surname, Email: u.Email, Password: u.PasswordHash}
}

func (r userRecord) entity() *entity.User {
	return &entity.User{ID: r.ID, Name: r.Name, Surname: r.Surname, Email: r.Email, PasswordHash: r.Password}
}

func toProductRecord(p *entity.Product) productRecord {
	return productRecord{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       number(p.Price),
		Image:       p.Image,
		Available:   p.Available,
		Category:    p.Category,
	}
}

func (r productRecord) entity() *entity.Product {
	return &entity.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       decimal.Decimal(r.Price),
		Image:       r.Image,
		Available:   r.Available,
		Category:    r.Category,
	}
}

func toSaleRecord(s *entity.Sale) saleRecord {
	lines := make([]lineRecord, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, lineRecord{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: number(l.UnitPrice)})
	}
	return saleRecord{ID: s.ID, UserID: s.UserID, Date: s.Date, Total: number(s.Total), Lines: lines}
}

func (r saleRecord) entity() *entity.Sale {
	lines := make([]entity.SaleLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, entity.SaleLine{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: decimal.Decimal(l.UnitPrice)})
	}
	return &entity.Sale{ID: r.ID, UserID: r.UserID, Date: r.Date, Total: decimal.Decimal(r.Total), Lines: lines}
}
