package entity

// User representa un cliente registrado de la tienda.
type User struct {
	ID           int64
	Name         string
	Surname      string // opcional
	Email        string
	PasswordHash string // bcrypt; nunca la contraseña en texto plano
}

// Identity son los datos no sensibles que viajan en la credencial de sesión.
type Identity struct {
	UserID int64
	Email  string
	Name   string
}
