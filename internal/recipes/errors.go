package recipes

import "errors"

// Failure taxonomy surfaced by the service. Callers match with
// errors.Is; the HTTP layer maps these to 404, 400, and 409.
var (
	ErrNotFound        = errors.New("recipe not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDuplicateName   = errors.New("name already exists")
)
