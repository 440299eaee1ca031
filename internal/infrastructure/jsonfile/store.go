// Package jsonfile implementa los puertos de persistencia sobre archivos JSON planos
// (usuarios.json, productos.json, ventas.json) dentro de un directorio.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/Tienda-api/pkg/logger"
)

const (
	usersFile    = "usuarios.json"
	productsFile = "productos.json"
	salesFile    = "ventas.json"
)

// Store mantiene en memoria una copia de los tres archivos. Toda mutación pasa por el mismo
// mutex y la copia en memoria solo cambia después de escribir el archivo con éxito.
type Store struct {
	dir string
	log *logger.Logger

	mu       sync.Mutex
	users    []userRecord
	products []productRecord
	sales    []saleRecord
}

// Open carga los archivos de dir; un archivo inexistente equivale a una colección vacía.
func Open(dir string, log *logger.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile: crear directorio %s: %w", dir, err)
	}
	s := &Store{dir: dir, log: log.Component("jsonfile")}
	if err := s.read(usersFile, &s.users); err != nil {
		return nil, err
	}
	if err := s.read(productsFile, &s.products); err != nil {
		return nil, err
	}
	if err := s.read(salesFile, &s.sales); err != nil {
		return nil, err
	}
	s.log.Info().
		Str("dir", dir).
		Int("usuarios", len(s.users)).
		Int("productos", len(s.products)).
		Int("ventas", len(s.sales)).
		Msg("datos cargados")
	return s, nil
}

func (s *Store) read(name string, dst any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("jsonfile: leer %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("jsonfile: %s inválido: %w", name, err)
	}
	return nil
}

// write reemplaza el archivo completo vía archivo temporal + rename.
func (s *Store) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: serializar %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("jsonfile: escribir %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("jsonfile: escribir %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("jsonfile: escribir %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("jsonfile: escribir %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("jsonfile: escribir %s: %w", name, err)
	}
	return nil
}

// Truncate vacía las tres colecciones (seed -reset).
func (s *Store) Truncate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range []string{usersFile, productsFile, salesFile} {
		if err := s.write(name, []struct{}{}); err != nil {
			return err
		}
	}
	s.users, s.products, s.sales = nil, nil, nil
	return nil
}

// Close no libera recursos; existe para cumplir el contrato común de backends.
func (s *Store) Close() error { return nil }
