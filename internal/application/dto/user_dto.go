package dto

// RegisterRequest entrada de POST /cargarUsuario (la contraseña se hashea en el caso de uso).
type RegisterRequest struct {
	Name     string `json:"nombre" validate:"required,max=200"`
	Surname  string `json:"apellido" validate:"omitempty,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"contraseña" validate:"required"`
}

// UserResponse salida de un usuario (sin contraseña).
type UserResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"nombre"`
	Surname string `json:"apellido,omitempty"`
	Email   string `json:"email"`
}

// LoginRequest entrada de POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"contraseña" validate:"required"`
}

// LoginResponse salida de POST /login; el token viaja en la cookie, no en el cuerpo.
type LoginResponse struct {
	Message string `json:"mensaje"`
	UserID  int64  `json:"usuarioId"`
	Name    string `json:"nombre"`
}
