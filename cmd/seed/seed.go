package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/storage"
)

// seedProduct formato de productos.json.
type seedProduct struct {
	ID          int64           `json:"id"`
	Name        string          `json:"nombre"`
	Description string          `json:"desc"`
	Price       decimal.Decimal `json:"precio"`
	Image       string          `json:"imagen"`
	Available   *bool           `json:"disponible"`
	Category    string          `json:"tipo"`
}

// seedUser formato de usuarios.json; la contraseña viene en texto plano.
type seedUser struct {
	ID       int64  `json:"id"`
	Name     string `json:"nombre"`
	Surname  string `json:"apellido"`
	Email    string `json:"email"`
	Password string `json:"contraseña"`
}

type passwordHasher interface {
	HashPassword(plain string) (string, error)
}

type result struct {
	Products int
	Users    int
}

// run carga los archivos de dir en el backend. Un archivo ausente se omite.
func run(ctx context.Context, backend *storage.Backend, hasher passwordHasher, dir string, reset bool) (result, error) {
	var res result
	if reset {
		if err := backend.Reset(ctx); err != nil {
			return res, fmt.Errorf("reset: %w", err)
		}
	}

	var products []seedProduct
	if err := readJSON(filepath.Join(dir, "productos.json"), &products); err != nil {
		return res, err
	}
	for _, p := range products {
		if p.ID <= 0 || p.Price.IsNegative() {
			return res, fmt.Errorf("producto inválido: id=%d", p.ID)
		}
		available := true
		if p.Available != nil {
			available = *p.Available
		}
		if err := backend.Products.Save(ctx, &entity.Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Image:       p.Image,
			Available:   available,
			Category:    p.Category,
		}); err != nil {
			return res, fmt.Errorf("producto %d: %w", p.ID, err)
		}
		res.Products++
	}

	var users []seedUser
	if err := readJSON(filepath.Join(dir, "usuarios.json"), &users); err != nil {
		return res, err
	}
	for _, u := range users {
		if u.Password == "" || strings.TrimSpace(u.Email) == "" {
			return res, fmt.Errorf("usuario inválido: id=%d", u.ID)
		}
		hash, err := hasher.HashPassword(u.Password)
		if err != nil {
			return res, err
		}
		if err := backend.Users.Create(ctx, &entity.User{
			ID:           u.ID,
			Name:         u.Name,
			Surname:      u.Surname,
			Email:        strings.ToLower(strings.TrimSpace(u.Email)),
			PasswordHash: hash,
		}); err != nil {
			return res, fmt.Errorf("usuario %s: %w", u.Email, err)
		}
		res.Users++
	}
	return res, nil
}

func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}
