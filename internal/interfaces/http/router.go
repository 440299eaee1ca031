package http

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/catalog"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/sales"
	"github.com/jhoicas/Tienda-api/internal/application/users"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	Sessions  SessionAuthenticator
	CatalogUC *catalog.CatalogUseCase
	SaleUC    *sales.CreateSaleUseCase
	ReceiptUC *sales.ReceiptUseCase
	UserUC    *users.UserUseCase

	CookieSecure   bool
	LoginRateLimit int           // intentos por minuto e IP; 0 = sin límite
	LimiterStorage fiber.Storage // nil = memoria del proceso
}

// AppConfig opciones del servidor fiber.
type AppConfig struct {
	Name        string
	Storage     string // driver activo, se informa en /health
	SwaggerFile string // vacío o inexistente = sin /docs
}

// NewApp construye la aplicación fiber con middlewares, rutas y fallback 404.
func NewApp(cfg AppConfig, deps RouterDeps, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: errorHandler,
	})
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(RequestLogger(log))
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs (el middleware exige que el archivo exista).
	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    "Tienda API",
			}))
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name, "storage": cfg.Storage})
	})

	Router(app, deps)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.MessageResponse{
			Message: fmt.Sprintf("No se encontró el recurso: %s %s", c.Method(), c.OriginalURL()),
		})
	})
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	requireSession := AuthMiddleware(deps.Sessions)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieSecure)
	app.Post("/cargarUsuario", authHandler.Register)
	app.Post("/login", loginLimiter(deps), authHandler.Login)
	app.Post("/logout", requireSession, authHandler.Logout)

	// Catálogo
	productHandler := NewProductHandler(deps.CatalogUC)
	app.Get("/productos", productHandler.List)
	app.Get("/productos/:id", productHandler.GetByID)
	app.Get("/productos/:desde/:hasta", productHandler.FilterByPrice)
	app.Put("/productos/:id", requireSession, productHandler.Update)

	// Ventas
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReceiptUC)
	app.Get("/ventas", saleHandler.List)
	app.Post("/ventas", requireSession, saleHandler.Create)
	app.Get("/ventas/:id/comprobante", requireSession, saleHandler.Receipt)

	// Usuarios (protegido)
	userHandler := NewUserHandler(deps.UserUC)
	app.Get("/usuarios", requireSession, userHandler.List)
	app.Delete("/usuarios/:id", requireSession, userHandler.Delete)
}

func loginLimiter(deps RouterDeps) fiber.Handler {
	if deps.LoginRateLimit <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        deps.LoginRateLimit,
		Expiration: time.Minute,
		Storage:    deps.LimiterStorage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "login:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "TOO_MANY_REQUESTS",
				Message: "demasiados intentos de login, intente más tarde",
			})
		},
	})
}

// errorHandler respuestas JSON para errores que no pasaron por writeError (pánicos, fiber.Error).
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
