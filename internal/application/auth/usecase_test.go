package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/pkg/jwt"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// memUsers implementa repository.UserRepository en memoria.
type memUsers struct {
	mu      sync.Mutex
	byID    map[int64]*entity.User
	failGet error
}

func newMemUsers() *memUsers { return &memUsers{byID: map[int64]*entity.User{}} }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var max int64
	for id, existing := range m.byID {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
		if id > max {
			max = id
		}
	}
	if u.ID == 0 {
		u.ID = max + 1
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id], nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if m.failGet != nil {
		return nil, m.failGet
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) List(context.Context) ([]*entity.User, error) { return nil, nil }
func (m *memUsers) Delete(context.Context, int64) error          { return nil }

func newTestAuth(t *testing.T, repo *memUsers) *AuthUseCase {
	t.Helper()
	signer, err := jwt.NewSigner("test-secret", "tienda-test", time.Hour)
	require.NoError(t, err)
	return NewAuthUseCase(repo, NewSessionIssuer(signer), logger.Nop()).WithHashCost(bcrypt.MinCost)
}

func TestRegisterUser_AsignaIDyHashea(t *testing.T) {
	repo := newMemUsers()
	uc := newTestAuth(t, repo)

	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name: "Ana", Surname: "Gómez", Email: " Ana@Example.com ", Password: "secreta",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "ana@example.com", out.Email)

	stored := repo.byID[1]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta", stored.PasswordHash, "nunca se guarda la contraseña en texto plano")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta")))

	out2, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Name: "Beto", Email: "beto@example.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out2.ID, "apellido es opcional e ID = max+1")
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := newTestAuth(t, newMemUsers())
	in := dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secreta"}

	_, err := uc.RegisterUser(context.Background(), in)
	require.NoError(t, err)

	in.Email = "ANA@example.com"
	_, err = uc.RegisterUser(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_CamposFaltantes(t *testing.T) {
	uc := newTestAuth(t, newMemUsers())
	cases := []dto.RegisterRequest{
		{Email: "a@b.c", Password: "x"},
		{Name: "A", Password: "x"},
		{Name: "A", Email: "a@b.c"},
		{Name: "   ", Email: "a@b.c", Password: "x"},
	}
	for _, in := range cases {
		_, err := uc.RegisterUser(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrMissingField)
	}
}

func TestRegisterUser_ContraseñaDemasiadoLarga(t *testing.T) {
	repo := newMemUsers()
	uc := newTestAuth(t, repo)

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: strings.Repeat("a", MaxPasswordBytes+1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.byID)

	// 36 caracteres de dos bytes = 72 bytes: todavía válida.
	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: strings.Repeat("ñ", 36),
	})
	require.NoError(t, err)

	// 37 caracteres de dos bytes: la longitud se mide en bytes.
	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Name: "Beto", Email: "beto@example.com", Password: strings.Repeat("ñ", 37),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVerify_MismoErrorParaEmailYPassword(t *testing.T) {
	uc := newTestAuth(t, newMemUsers())
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secreta"})
	require.NoError(t, err)

	_, errWrongPass := uc.Verify(context.Background(), "ana@example.com", "otra")
	_, errNoUser := uc.Verify(context.Background(), "nadie@example.com", "secreta")

	assert.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, domain.ErrInvalidCredentials)
	assert.Equal(t, errWrongPass, errNoUser)

	user, err := uc.Verify(context.Background(), "ANA@example.com", "secreta")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestVerify_ErrorDeAlmacen(t *testing.T) {
	repo := newMemUsers()
	repo.failGet = errors.New("db caída")
	uc := newTestAuth(t, repo)

	_, err := uc.Verify(context.Background(), "ana@example.com", "x")
	assert.EqualError(t, err, "db caída")
}

func TestLogin_EmiteSesion(t *testing.T) {
	uc := newTestAuth(t, newMemUsers())
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secreta"})
	require.NoError(t, err)

	out, session, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "secreta"})
	require.NoError(t, err)
	assert.Equal(t, "Login exitoso", out.Message)
	assert.Equal(t, int64(1), out.UserID)
	assert.Equal(t, "Ana", out.Name)
	require.NotNil(t, session)

	id, err := uc.sessions.Authenticate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, &entity.Identity{UserID: 1, Email: "ana@example.com", Name: "Ana"}, id)
}

func TestLogin_Invalido(t *testing.T) {
	uc := newTestAuth(t, newMemUsers())

	_, session, err := uc.Login(context.Background(), dto.LoginRequest{Email: "x@y.z", Password: "p"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Nil(t, session)

	_, _, err = uc.Login(context.Background(), dto.LoginRequest{Email: "x@y.z"})
	assert.ErrorIs(t, err, domain.ErrMissingField)
}
