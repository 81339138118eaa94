package mapper

import (
	usersdomain "github.com/galeria/marketplace-api/internal/domains/users/domain"
)

// RegisterRequest is the payload accepted by user registration.
type RegisterRequest struct {
	DNI       string `json:"dni"`
	Nombre    string `json:"nombre" binding:"required"`
	Apellidos string `json:"apellidos"`
	Nick      string `json:"nick" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	Rol       string `json:"rol"`
}

// LoginRequest is the payload accepted by login.
type LoginRequest struct {
	Nick     string `json:"nick" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the opaque session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// User is the transport-layer user representation. The password never
// leaves the server.
type User struct {
	ID        int64  `json:"id"`
	DNI       string `json:"dni,omitempty"`
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos,omitempty"`
	Nick      string `json:"nick"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono,omitempty"`
	Direccion string `json:"direccion,omitempty"`
	Rol       string `json:"rol"`
	Activo    bool   `json:"activo"`
}

// ToDomainUser converts a registration payload into the domain model.
func ToDomainUser(req RegisterRequest) *usersdomain.User {
	return &usersdomain.User{
		DNI:      req.DNI,
		Name:     req.Nombre,
		LastName: req.Apellidos,
		Nick:     req.Nick,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Telefono,
		Address:  req.Direccion,
		Role:     usersdomain.Role(req.Rol),
	}
}

// FromDomainUser converts a domain user to the transport representation.
func FromDomainUser(user *usersdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:        user.ID,
		DNI:       user.DNI,
		Nombre:    user.Name,
		Apellidos: user.LastName,
		Nick:      user.Nick,
		Email:     user.Email,
		Telefono:  user.Phone,
		Direccion: user.Address,
		Rol:       string(user.Role),
		Activo:    user.Active,
	}
}
