package domain

import (
	"errors"
	"fmt"
)

// ErrUpstream marks provider transport failures. Callers branch on the kind
// with IsKind; the concrete cause stays wrapped for the log.
var ErrUpstream = errors.New("upstream unavailable")

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
