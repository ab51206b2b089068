package domain

import "gitlab.com/tozd/go/errors"

var (
	ErrInvalidPath    = errors.Base("invalid path")
	ErrInvalidPattern = errors.Base("invalid pattern")
	ErrInvalidGlob    = errors.Base("invalid glob")
	ErrInvalidName    = errors.Base("invalid name")
	ErrNameTaken      = errors.Base("name already taken")
	ErrCollision      = errors.Base("plan contains colliding names")
	ErrNoTerminal     = errors.Base("confirmation requires an interactive terminal")
	ErrInvalidConfig  = errors.Base("invalid configuration")
)
