package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/docs"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/catalog"
	"github.com/jhoicas/Tienda-api/internal/application/sales"
	"github.com/jhoicas/Tienda-api/internal/application/users"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/Tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/jwt"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := storage.Open(ctx, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer func() {
		if err := backend.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("cerrar almacén")
		}
	}()

	signer, err := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.Expiration)*time.Minute)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar JWT")
	}
	sessions := auth.NewSessionIssuer(signer)

	authUC := auth.NewAuthUseCase(backend.Users, sessions, log)
	catalogUC := catalog.NewCatalogUseCase(backend.Products)
	saleUC := sales.NewCreateSaleUseCase(backend.Runner, backend.Products, backend.Sales, log)
	receiptUC := sales.NewReceiptUseCase(backend.Sales, backend.Users, backend.Products,
		infrapdf.NewMarotoReceiptGenerator(cfg.App.Name, "es-AR"))
	userUC := users.NewUserUseCase(backend.Users, backend.Sales, log)

	// Limitador de login: Redis si está configurado (varias instancias), si no memoria del proceso.
	var limiterStorage fiber.Storage
	if cfg.Redis.URL != "" {
		rs, err := cache.NewRedisStorage(ctx, cfg.Redis.URL, "tienda:limiter:")
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rs.Close()
		limiterStorage = rs
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		Storage:     backend.Driver,
		SwaggerFile: swaggerFile(cfg.HTTP.SwaggerFile, log),
	}, httpRouter.RouterDeps{
		AuthUC:         authUC,
		Sessions:       sessions,
		CatalogUC:      catalogUC,
		SaleUC:         saleUC,
		ReceiptUC:      receiptUC,
		UserUC:         userUC,
		CookieSecure:   cfg.JWT.CookieSecure,
		LoginRateLimit: cfg.HTTP.LoginRateLimit,
		LimiterStorage: limiterStorage,
	}, log)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// swaggerFile devuelve path si existe; si no, vuelca el documento compilado en docs a un temporal.
func swaggerFile(path string, log *logger.Logger) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	f, err := os.CreateTemp("", "tienda-swagger-*.json")
	if err != nil {
		log.Warn().Err(err).Msg("swagger deshabilitado")
		return ""
	}
	defer f.Close()
	if _, err := f.WriteString(docs.SwaggerInfo.ReadDoc()); err != nil {
		log.Warn().Err(err).Msg("swagger deshabilitado")
		return ""
	}
	return f.Name()
}
