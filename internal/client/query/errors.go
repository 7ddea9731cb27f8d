package query

import "errors"

// ErrMissingRequiredParameter is returned before any network call when a
// required search parameter is absent.
var ErrMissingRequiredParameter = errors.New("missing required parameter")
