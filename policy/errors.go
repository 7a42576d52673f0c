package policy

import (
	"errors"
	"fmt"
)

// ParseError reports a policy syntax problem together with the byte
// position of the offending token, so a caller can point a user back
// at their policy source.
type ParseError struct {
	Pos     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("policy: parse error at byte %d: %s", e.Pos, e.Message)
}

// NotSatisfiedError is returned by MinimalSatisfyingSet when the
// supplied candidate attribute set does not satisfy the tree at all.
type NotSatisfiedError struct{}

func (e *NotSatisfiedError) Error() string {
	return "policy: attribute set does not satisfy the access tree"
}

// IsNotSatisfied reports whether err is (or wraps) a NotSatisfiedError.
func IsNotSatisfied(err error) bool {
	var notSatisfied *NotSatisfiedError
	return errors.As(err, &notSatisfied)
}
