// seed carga productos.json y usuarios.json en el almacén configurado (STORAGE_DRIVER).
//
// Uso: go run ./cmd/seed -dir ./seed [-reset]
// Las contraseñas de usuarios.json vienen en texto plano y se guardan hasheadas con bcrypt.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/storage"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

func main() {
	dir := flag.String("dir", ".", "directorio con productos.json y usuarios.json")
	reset := flag.Bool("reset", false, "vaciar usuarios, productos y ventas antes de cargar")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	backend, err := storage.Open(ctx, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer backend.Close(ctx)

	hasher := auth.NewAuthUseCase(backend.Users, nil, log)
	res, err := run(ctx, backend, hasher, *dir, *reset)
	if err != nil {
		log.Error().Err(err).Msg("seed")
		backend.Close(ctx)
		os.Exit(1)
	}
	log.Info().
		Str("storage", backend.Driver).
		Int("productos", res.Products).
		Int("usuarios", res.Users).
		Msg("seed completado")
}
