package poaia

import "errors"

var (
	ErrNegativeDifficulty = errors.New("difficulty is negative")
)
