package domain

import (
	"errors"
	"strings"
)

// Role enumerates the marketplace principal roles.
type Role string

const (
	RoleUser   Role = "user"
	RoleArtist Role = "artist"
	RoleAdmin  Role = "admin"
)

var (
	ErrEmptyNick     = errors.New("nick is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 4 characters")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrInvalidRole   = errors.New("role is invalid")
)

// User represents a marketplace principal: buyer, artist, or administrator.
type User struct {
	ID       int64
	DNI      string
	Name     string
	LastName string
	Nick     string
	Email    string
	Password string
	Phone    string
	Address  string
	Role     Role
	Active   bool
}

// NewUser builds a user ensuring required invariants.
func NewUser(id int64, nick, email, password string) (*User, error) {
	user := &User{ID: id, Role: RoleUser, Active: true}
	if err := user.SetNick(nick); err != nil {
		return nil, err
	}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	return user, nil
}

// SetNick trims and validates the unique handle.
func (u *User) SetNick(nick string) error {
	nick = strings.TrimSpace(nick)
	if nick == "" {
		return ErrEmptyNick
	}
	u.Nick = nick
	return nil
}

// SetEmail validates the contact address.
func (u *User) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// SetPassword validates basic password strength.
func (u *User) SetPassword(password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < 4 {
		return ErrWeakPassword
	}
	u.Password = password
	return nil
}

// SetRole ensures only known roles are accepted and defaults to user.
func (u *User) SetRole(role Role) error {
	if role == "" {
		role = RoleUser
	}
	switch role {
	case RoleUser, RoleArtist, RoleAdmin:
		u.Role = role
		return nil
	default:
		return ErrInvalidRole
	}
}

// IsAdmin reports whether the principal carries the elevated role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// CanSell reports whether the principal may list artworks for sale.
func (u *User) CanSell() bool { return u.Role == RoleArtist || u.Role == RoleAdmin }

// CheckPassword compares the stored password with the supplied credentials.
func (u *User) CheckPassword(password string) bool {
	return strings.TrimSpace(password) != "" && u.Password == strings.TrimSpace(password)
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetNick(u.Nick); err != nil {
		return err
	}
	if err := u.SetEmail(u.Email); err != nil {
		return err
	}
	if err := u.SetPassword(u.Password); err != nil {
		return err
	}
	return u.SetRole(u.Role)
}
