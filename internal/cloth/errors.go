package cloth

import "errors"

// Domain errors for cloth operations.
var (
	// ErrInvalidParams indicates a solver parameter outside its valid range.
	ErrInvalidParams = errors.New("cloth: invalid solver parameters")

	// ErrDanglingConstraint indicates a constraint that is owned by a removed
	// particle or names an endpoint outside the arena.
	ErrDanglingConstraint = errors.New("cloth: dangling constraint")

	// ErrIncomingMismatch indicates a particle whose incoming reference count
	// disagrees with the constraints actually pointing at it.
	ErrIncomingMismatch = errors.New("cloth: incoming constraint count mismatch")
)
