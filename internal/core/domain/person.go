package domain

import "errors"

var ErrPersonNotFound = errors.New("person not found")
var ErrDuplicateID = errors.New("person id already exists")

// Person is a single entry in the people registry.
type Person struct {
	ID        int
	FirstName string
	LastName  string
	Phone     string
	City      string
	Balance   float64
}

// ValidationError carries the human-readable reason a person was rejected.
// It is a defined outcome of TryAdd/TryUpdate, not a fault.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
