package session

import "errors"

// Negative outcomes of session operations. Match with errors.Is.
var (
	ErrAlreadyRegistered    = errors.New("user already registered")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("incorrect credentials")
	ErrRoleNotFound         = errors.New("role not found")
	ErrRefreshTokenNotFound = errors.New("token is not assigned to any user")
	ErrRefreshTokenInactive = errors.New("token is not active")
)

// PersistenceError reports a storage failure during Op.
// Error() does not include the cause; use errors.Unwrap or errors.As to inspect it.
type PersistenceError struct {
	Err error
	Op  string
}

func (e *PersistenceError) Error() string {
	return "persistence failure during " + e.Op
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
