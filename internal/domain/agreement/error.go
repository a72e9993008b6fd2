package agreement

import (
	"errors"
)

var (
	ErrInvalidInput  = errors.New("missing required fields")
	ErrNotFound      = errors.New("agreement not found")
	ErrDuplicateHash = errors.New("identical agreement already logged")
	ErrAlreadySigned = errors.New("agreement already countersigned")
	ErrDecryption    = errors.New("agreement text decryption failed")
)
