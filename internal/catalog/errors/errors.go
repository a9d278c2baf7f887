package errors

import "errors"

var ErrNotFound = errors.New("costume not found")
