// Package password hashes and verifies passwords with Argon2id, storing the
// result in PHC string format.
package password

import (
	"errors"
	"fmt"

	"github.com/alexedwards/argon2id"

	"github.com/bikeshop/shop-api/internal/core/domain"
)

// params yields "$argon2id$v=19$m=19456,t=2,p=1$<salt>$<key>".
var params = &argon2id.Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// Hash derives an Argon2id key from plain with a fresh random salt.
func Hash(plain string) (string, error) {
	encoded, err := argon2id.CreateHash(plain, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrPasswordHash, err)
	}
	return encoded, nil
}

// Verify reports whether plain matches encoded. A malformed or unsupported
// encoding returns domain.ErrPasswordVerify.
func Verify(plain, encoded string) (bool, error) {
	if err := checkEncoding(encoded); err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrPasswordVerify, err)
	}
	ok, err := argon2id.ComparePasswordAndHash(plain, encoded)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrPasswordVerify, err)
	}
	return ok, nil
}

// checkEncoding rejects hashes that decode but would make the KDF panic or
// compare against an empty key.
func checkEncoding(encoded string) error {
	p, salt, key, err := argon2id.DecodeHash(encoded)
	if err != nil {
		return err
	}
	if p.Memory == 0 || p.Iterations == 0 || p.Parallelism == 0 {
		return errors.New("invalid parameters")
	}
	if len(salt) == 0 || len(key) == 0 {
		return argon2id.ErrInvalidHash
	}
	return nil
}
