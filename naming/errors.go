package naming

import "errors"

var (
	ErrUnknownSelector   = errors.New("unknown selector")
	ErrUnknownModifier   = errors.New("unknown modifier")
	ErrUnknownType       = errors.New("unknown type modifier")
	ErrUnknownFormat     = errors.New("unknown format")
	ErrUnknownUnderscore = errors.New("unknown underscore option")
	ErrInvalidRegex      = errors.New("invalid regular expression")
)
