package optics

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is wrapped by every validation error returned before a
// build starts. Test for it with errors.Is.
var ErrInvalidParameter = errors.New("optics: invalid parameter")

func invalidParameter(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...)
}
