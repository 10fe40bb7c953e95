package archive

import "errors"

var (
	ErrMintNotFound     = errors.New("mint not found")
	ErrTransferNotFound = errors.New("transfer not found")
)
