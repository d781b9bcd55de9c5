package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrLoginDenied = errors.New("login denied")

// User models an operator credential from the users file. A user with
// IsActive false is permanently blocked until the file is edited externally.
type User struct {
	Username string
	Password string
	IsActive bool
}
