package cipher

import (
	"fmt"
)

// Direction selects whether a transform encrypts or decrypts.
type Direction int

const (
	DirEncrypt Direction = iota
	DirDecrypt
)

func (d Direction) String() string {
	switch d {
	case DirEncrypt:
		return "encrypt"
	case DirDecrypt:
		return "decrypt"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

func (d Direction) sign() (int, error) {
	switch d {
	case DirEncrypt:
		return 1, nil
	case DirDecrypt:
		return -1, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownDirection, int(d))
	}
}
