package node

import "errors"

var (
	ErrEmptyCredential = errors.New("credential is empty")
	ErrNoCredential    = errors.New("no credential configured")
)
