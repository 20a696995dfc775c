package security

import (
	"crypto/sha256"
	"encoding/hex"
	"math/rand/v2"
	"strconv"
	"unicode/utf8"
)

// HashPassword digests a plaintext password concatenated with the account's
// decimal salt. The digest is deterministic so stored hashes stay
// verifiable across restarts and against legacy records.
func HashPassword(plain string, salt int64) string {
	sum := sha256.Sum256([]byte(plain + strconv.FormatInt(salt, 10)))

	return hex.EncodeToString(sum[:])
}

// NewSalt returns a fresh salt for account creation. A salt never changes
// after the account exists.
func NewSalt() int64 {
	return rand.Int64N(1_000_000_000)
}

// IsStrongPassword reports whether pw meets the account policy: at least 8
// characters with one lowercase letter, one uppercase letter, one digit and
// one character that is none of those (underscore included).
func IsStrongPassword(pw string) bool {
	// length is in characters, not bytes
	if utf8.RuneCountInString(pw) < 8 {
		return false
	}

	var lower, upper, digit, special bool

	for _, c := range pw {
		switch {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= '0' && c <= '9':
			digit = true
		default:
			special = true
		}
	}

	return lower && upper && digit && special
}
