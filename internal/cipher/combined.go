package cipher

// MinKeyLength is the shortest key accepted at the user-facing boundary.
const MinKeyLength = 10

// Encrypt applies the Vigenère layer and then the Affine layer.
func Encrypt(text, key string, p AffineParams) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	stage, err := Vigenere(text, key, DirEncrypt)
	if err != nil {
		return "", err
	}
	return Affine(stage, p, DirEncrypt)
}

// Decrypt undoes Encrypt: Affine first, then Vigenère.
func Decrypt(text, key string, p AffineParams) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	stage, err := Affine(text, p, DirDecrypt)
	if err != nil {
		return "", err
	}
	return Vigenere(stage, key, DirDecrypt)
}

// ValidateKey enforces the minimum key length policy. Only letters count,
// since non-letters never shift anything.
func ValidateKey(key string, minLen int) error {
	shifts, err := KeyShifts(key)
	if err != nil {
		return &InvalidKeyError{Length: 0, Min: minLen}
	}
	if n := len(shifts); n < minLen {
		return &InvalidKeyError{Length: n, Min: minLen}
	}
	return nil
}
