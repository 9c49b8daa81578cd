package klondike

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected indicates the move breaks a placement rule. The state
	// the move was attempted on is unchanged.
	ErrRejected = errors.New("klondike: move rejected")

	// ErrInvariant indicates malformed input that correct callers never
	// produce: an index out of range, an empty source, a face-down card
	// named as a tail, or a card that is not where the move claims.
	ErrInvariant = errors.New("klondike: invariant violation")
)

// IsRejected reports whether err is a rules rejection
func IsRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}

func rejectf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRejected, fmt.Sprintf(format, args...))
}

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
