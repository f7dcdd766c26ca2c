package chunker

import "errors"

// ErrBadConfig is returned when chunk size and overlap cannot form a valid
// splitting configuration. It is rejected before any chunking work begins.
var ErrBadConfig = errors.New("invalid chunking configuration")
