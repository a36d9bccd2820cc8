package user

import (
	"github.com/pkg/errors"
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User represents a user in the system
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// Summary is the listing view of a user. It never carries the password.
type Summary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// Database holds registered users. Implementations must keep usernames
// unique and hand out strictly increasing ids in registration order.
type Database interface {
	// AddUser registers a user and returns its id. A taken username fails
	// with an error whose cause is ErrDuplicateUsername.
	AddUser(username, password string) (int, error)
	// FindByCredentials returns the first user whose username and password
	// both match exactly, or an error whose cause is ErrInvalidCredentials.
	FindByCredentials(username, password string) (*User, error)
	// ListUsers returns every user in registration order.
	ListUsers() ([]Summary, error)
}
