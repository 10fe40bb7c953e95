package wallet

import "errors"

var (
	ErrBadPassphrase    = errors.New("passphrase does not unlock keystore")
	ErrCorruptKeystore  = errors.New("keystore file is corrupt")
	ErrAddressMismatch  = errors.New("keystore address does not match derived key")
	ErrUnknownKeystore  = errors.New("unsupported keystore version")
	ErrEmptyPassphrase  = errors.New("passphrase is empty")
	ErrInvalidSignature = errors.New("invalid signature length")
)
