package composer

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure cases
var (
	// ErrModelNotFound is returned when a model name has not been registered
	ErrModelNotFound = errors.New("composer: model not found")

	// ErrRelationNotFound is returned when a relation name is not configured on a model
	ErrRelationNotFound = errors.New("composer: relation not found")

	// ErrInvalidRelation is returned when a relation config carries an unknown type
	ErrInvalidRelation = errors.New("composer: invalid relation type")

	// ErrInvalidConfig is returned when a relation config is missing required fields
	ErrInvalidConfig = errors.New("composer: invalid relation config")

	// ErrNilExecutor is returned when a fetch is attempted without an executor
	ErrNilExecutor = errors.New("composer: nil executor")
)

// RelationError wraps relation resolution failures with context
type RelationError struct {
	Relation string // Name of the relation
	Model    string // Name of the model it was looked up on
	Err      error  // The underlying error
}

func (e *RelationError) Error() string {
	return fmt.Sprintf("composer: relation '%s' error on model %s: %v",
		e.Relation, e.Model, e.Err)
}

func (e *RelationError) Unwrap() error {
	return e.Err
}

// WrapRelationError wraps a relation error with context
func WrapRelationError(relation, model string, err error) error {
	if err == nil {
		return nil
	}
	return &RelationError{
		Relation: relation,
		Model:    model,
		Err:      err,
	}
}

// IsRelationNotFound checks if the error is ErrRelationNotFound
func IsRelationNotFound(err error) bool {
	return errors.Is(err, ErrRelationNotFound)
}

// IsModelNotFound checks if the error is ErrModelNotFound
func IsModelNotFound(err error) bool {
	return errors.Is(err, ErrModelNotFound)
}
