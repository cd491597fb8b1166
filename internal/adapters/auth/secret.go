package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"convitepro/internal/domain"
)

type secretVerifier struct {
	bcryptHash []byte
	plain      []byte
}

// NewSecretVerifier returns a SecretVerifier for the operator password.
// When a bcrypt hash is configured it takes precedence; otherwise the plain
// secret is compared in constant time. The dashboard password used to live as
// a literal in the front end; it is configuration now.
func NewSecretVerifier(plain, bcryptHash string) (domain.SecretVerifier, error) {
	if plain == "" && bcryptHash == "" {
		return nil, errors.New("admin password not configured")
	}
	return &secretVerifier{
		bcryptHash: []byte(bcryptHash),
		plain:      []byte(plain),
	}, nil
}

func (v *secretVerifier) Verify(password string) error {
	if len(v.bcryptHash) > 0 {
		if err := bcrypt.CompareHashAndPassword(v.bcryptHash, []byte(password)); err != nil {
			return domain.ErrForbidden
		}
		return nil
	}
	if subtle.ConstantTimeCompare(v.plain, []byte(password)) != 1 {
		return domain.ErrForbidden
	}
	return nil
}
