package usecase

import "errors"

var ErrDependencyUnavailable = errors.New("dependency unavailable")
