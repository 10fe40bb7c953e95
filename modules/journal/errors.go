package journal

import "errors"

var (
	ErrUnknownFormat = errors.New("unknown export format")
)
