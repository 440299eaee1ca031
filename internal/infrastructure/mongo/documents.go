package mongo

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

type userDoc struct {
	ID       int64  `bson:"id"`
	Name     string `bson:"nombre"`
	Surname  string `bson:"apellido,omitempty"`
	Email    string `bson:"email"`
	Password string `bson:"contraseña"`
}

type productDoc struct {
	ID          int64                `bson:"id"`
	Name        string               `bson:"nombre"`
	Description string               `bson:"desc"`
	Price       primitive.Decimal128 `bson:"precio"`
	Image       string               `bson:"imagen"`
	Available   bool                 `bson:"disponible"`
	Category    string               `bson:"tipo"`
}

type saleDoc struct {
	ID     int64                `bson:"id"`
	UserID int64                `bson:"id_usuario"`
	Date   time.Time            `bson:"fecha"`
	Total  primitive.Decimal128 `bson:"total"`
	Lines  []lineDoc            `bson:"productos"`
}

type lineDoc struct {
	ProductID int64                `bson:"id_producto"`
	Quantity  int                  `bson:"cantidad"`
	UnitPrice primitive.Decimal128 `bson:"precio_unitario"`
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	out, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("decimal128 %s: %w", d, err)
	}
	return out, nil
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	out, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("decimal %s: %w", d, err)
	}
	return out, nil
}

func toUserDoc(u *entity.User) userDoc {
	return userDoc{ID: u.ID, Name: u.Name, Surname: u.Surname, Email: u.Email, Password: u.PasswordHash}
}

func (d userDoc) entity() *entity.User {
	return &entity.User{ID: d.ID, Name: d.Name, Surname: d.Surname, Email: d.Email, PasswordHash: d.Password}
}

func toProductDoc(p *entity.Product) (productDoc, error) {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return productDoc{}, err
	}
	return productDoc{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		Image:       p.Image,
		Available:   p.Available,
		Category:    p.Category,
	}, nil
}

func (d productDoc) entity() (*entity.Product, error) {
	price, err := fromDecimal128(d.Price)
	if err != nil {
		return nil, err
	}
	return &entity.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       price,
		Image:       d.Image,
		Available:   d.Available,
		Category:    d.Category,
	}, nil
}

func toSaleDoc(s *entity.Sale) (saleDoc, error) {
	total, err := toDecimal128(s.Total)
	if err != nil {
		return saleDoc{}, err
	}
	lines := make([]lineDoc, 0, len(s.Lines))
	for _, l := range s.Lines {
		price, err := toDecimal128(l.UnitPrice)
		if err != nil {
			return saleDoc{}, err
		}
		lines = append(lines, lineDoc{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: price})
	}
	return saleDoc{ID: s.ID, UserID: s.UserID, Date: s.Date, Total: total, Lines: lines}, nil
}

func (d saleDoc) entity() (*entity.Sale, error) {
	total, err := fromDecimal128(d.Total)
	if err != nil {
		return nil, err
	}
	lines := make([]entity.SaleLine, 0, len(d.Lines))
	for _, l := range d.Lines {
		price, err := fromDecimal128(l.UnitPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, entity.SaleLine{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: price})
	}
	return &entity.Sale{ID: d.ID, UserID: d.UserID, Date: d.Date, Total: total, Lines: lines}, nil
}
