package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// dummyHash se compara cuando el email no existe para que ambos fallos tarden lo mismo.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("tienda-api/dummy"), bcrypt.DefaultCost)

// AuthUseCase casos de uso de autenticación: registro, verificación y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	sessions *SessionIssuer
	cost     int
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sessions *SessionIssuer, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sessions: sessions, cost: bcrypt.DefaultCost, log: log.Component("auth")}
}

// WithHashCost ajusta el costo de bcrypt (los tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithHashCost(cost int) *AuthUseCase {
	uc.cost = cost
	return uc
}

// MaxPasswordBytes límite de bcrypt; se cuentan bytes, no caracteres.
const MaxPasswordBytes = 72

// HashPassword deriva la credencial de una contraseña en texto plano.
// Más de MaxPasswordBytes bytes = ErrInvalidInput.
func (uc *AuthUseCase) HashPassword(plain string) (string, error) {
	if len(plain) > MaxPasswordBytes {
		return "", domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), uc.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.ErrInvalidInput
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// RegisterUser crea un usuario: hashea la contraseña y persiste. El ID lo asigna el almacén.
// Devuelve ErrMissingField si falta nombre, email o contraseña y ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.ErrMissingField
	}
	hash, err := uc.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Name:         name,
		Surname:      strings.TrimSpace(in.Surname),
		Email:        email,
		PasswordHash: hash,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if !errors.Is(err, domain.ErrEmailAlreadyExists) {
			uc.log.Error().Err(err).Msg("registrar usuario")
		}
		return nil, err
	}
	uc.log.Info().Int64("usuario_id", user.ID).Msg("usuario registrado")
	return dto.NewUserResponse(user), nil
}

// Verify comprueba email y contraseña. Email desconocido y contraseña incorrecta
// devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Verify(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Login verifica las credenciales y emite la credencial de sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, *Session, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, nil, domain.ErrMissingField
	}
	user, err := uc.Verify(ctx, in.Email, in.Password)
	if err != nil {
		return nil, nil, err
	}
	session, err := uc.sessions.Issue(user)
	if err != nil {
		return nil, nil, err
	}
	uc.log.Info().Int64("usuario_id", user.ID).Msg("login exitoso")
	return &dto.LoginResponse{
		Message: "Login exitoso",
		UserID:  user.ID,
		Name:    user.Name,
	}, session, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
