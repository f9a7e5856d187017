package service

import "fmt"

// Error keys reported to clients, matching the alert keys of the public API.
const (
	KeyIDExists         = "idexists"
	KeyIDNull           = "idnull"
	KeyIDInvalid        = "idinvalid"
	KeyRequired         = "required"
	KeyRelationNotFound = "relationnotfound"
)

// ValidationError rejects a write whose payload is incomplete or points at
// a row that does not exist. Nothing is persisted.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Reason)
}

// NotFoundError reports a missing id on get, update or delete.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ConflictError reports an id that is present, absent or mismatched where
// the operation requires otherwise. Key is one of the KeyID* constants.
type ConflictError struct {
	Entity string
	Key    string
}

func (e *ConflictError) Error() string {
	switch e.Key {
	case KeyIDExists:
		return fmt.Sprintf("a new %s cannot already have an id", e.Entity)
	case KeyIDNull:
		return fmt.Sprintf("%s id is missing", e.Entity)
	case KeyIDInvalid:
		return fmt.Sprintf("%s id does not match the path", e.Entity)
	}
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Key)
}
