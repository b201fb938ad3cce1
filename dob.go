package auth

import (
	"time"

	"github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
)

const (
	// dobInputLayout is what the login form submits
	dobInputLayout = "2006-01-02"
	// dobStorageLayout is what the roster hashes. Legacy format, do not change
	// without re-hashing every record.
	dobStorageLayout = "02-01-2006"
)

// DOBHashCost is the bcrypt cost used when hashing dates of birth during
// roster import. Tests may lower it.
var DOBHashCost = bcrypt.DefaultCost

// HashDOB will generate a hash for a date of birth already in storage format
func HashDOB(dob string) (string, error) {
	if dob == "" {
		return "", errors.New("date of birth must not be empty", errors.CategoryValidation)
	}

	h, err := bcrypt.GenerateFromPassword([]byte(dob), DOBHashCost)
	return string(h), err
}

// CompareDOBAndHash validates the given cleartext date of birth, in storage
// format, against the stored hash. The comparison runs over the hash, never
// the reverse; bcrypt keeps it constant-time-equivalent.
func CompareDOBAndHash(dob, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(dob)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredential
		}
		return err
	}
	return nil
}

// reformatDOB converts the submitted YYYY-MM-DD value to the DD-MM-YYYY
// storage format. Anything that does not parse strictly is treated as a
// credential mismatch, not a lower-level failure.
func reformatDOB(in string) (string, error) {
	t, err := time.Parse(dobInputLayout, in)
	if err != nil {
		return "", ErrInvalidCredential
	}
	return t.Format(dobStorageLayout), nil
}
