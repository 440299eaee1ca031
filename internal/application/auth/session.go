package auth

import (
	"strings"
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/pkg/jwt"
)

// Session credencial emitida al iniciar sesión.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// SessionIssuer emite y valida credenciales firmadas de vida limitada. No guarda estado:
// una credencial es válida mientras su firma y su expiración lo sean.
type SessionIssuer struct {
	signer *jwt.Signer
}

// NewSessionIssuer construye el emisor sobre un firmador JWT.
func NewSessionIssuer(signer *jwt.Signer) *SessionIssuer {
	return &SessionIssuer{signer: signer}
}

// Issue firma {id, email, nombre} con expiración absoluta.
func (s *SessionIssuer) Issue(user *entity.User) (*Session, error) {
	token, exp, err := s.signer.Generate(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp}, nil
}

// Authenticate valida la credencial cruda y devuelve la identidad embebida.
func (s *SessionIssuer) Authenticate(raw string) (*entity.Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, domain.ErrMissingCredential
	}
	claims, err := s.signer.Parse(raw)
	if err != nil || claims.UserID <= 0 {
		return nil, domain.ErrInvalidCredential
	}
	return &entity.Identity{UserID: claims.UserID, Email: claims.Email, Name: claims.Name}, nil
}
