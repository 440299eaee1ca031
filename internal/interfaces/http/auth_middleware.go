package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// SessionCookie nombre de la cookie de sesión.
const SessionCookie = "auth_token"

// LocalIdentity key de Locals con la *entity.Identity autenticada.
const LocalIdentity = "identity"

// SessionAuthenticator valida la credencial cruda (auth.SessionIssuer).
type SessionAuthenticator interface {
	Authenticate(raw string) (*entity.Identity, error)
}

// AuthMiddleware toma la credencial de la cookie auth_token o, si falta, del header
// "Authorization: Bearer <token>", y deja la identidad en c.Locals.
func AuthMiddleware(sessions SessionAuthenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(SessionCookie)
		if raw == "" {
			raw = bearerToken(c.Get(fiber.HeaderAuthorization))
		}
		if strings.TrimSpace(raw) == "" {
			return writeError(c, domain.ErrMissingCredential)
		}
		identity, err := sessions.Authenticate(raw)
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalIdentity, identity)
		return c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetIdentity devuelve la identidad del contexto (después del middleware de auth).
func GetIdentity(c *fiber.Ctx) *entity.Identity {
	id, _ := c.Locals(LocalIdentity).(*entity.Identity)
	return id
}
