package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Error text codes used across the package. InvalidCredential covers both an
// unknown hall ticket and a DOB mismatch: the two must stay indistinguishable
// to callers so the login form cannot be used to enumerate accounts.
const (
	TextCodeMissingCredential = "MISSING_CREDENTIAL"
	TextCodeInvalidCredential = "INVALID_CREDENTIAL"
	TextCodeConcurrentSession = "CONCURRENT_SESSION"
	TextCodeIssuanceFailed    = "ISSUANCE_FAILED"
	TextCodeTokenExpired      = "TOKEN_EXPIRED"
	TextCodeTokenMalformed    = "TOKEN_MALFORMED"
)

// ErrMissingCredential is returned when either credential field is absent
var ErrMissingCredential = errors.New(
	"hall ticket number and date of birth are required",
	errors.CategoryValidation,
).WithTextCode(TextCodeMissingCredential)

// ErrInvalidCredential is returned for an unknown hall ticket or a DOB mismatch
var ErrInvalidCredential = errors.New(
	"invalid hall ticket number or date of birth",
	errors.CategoryAuth,
).WithTextCode(TextCodeInvalidCredential).WithCode(errors.CodeUnauthorized)

// ErrConcurrentSession is returned when the candidate already holds an active session
var ErrConcurrentSession = errors.New(
	"multiple login detected: this account is already logged in from another device or browser, contact the administrator if you believe this is an error",
	errors.CategoryAuth,
).WithTextCode(TextCodeConcurrentSession).WithCode(errors.CodeUnauthorized)

// ErrIssuanceFailed is returned when the login-state write fails after a
// successful verification. Safe to retry.
var ErrIssuanceFailed = errors.New(
	"could not record the login, please try again",
	errors.CategoryInternal,
).WithTextCode(TextCodeIssuanceFailed)

// ErrTokenExpired is returned for a token past its embedded expiry
var ErrTokenExpired = errors.New(
	"token is expired",
	errors.CategoryAuth,
).WithTextCode(TextCodeTokenExpired).WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a token cannot be parsed or its signature is invalid
var ErrTokenMalformed = errors.New(
	"token is malformed",
	errors.CategoryAuth,
).WithTextCode(TextCodeTokenMalformed).WithCode(errors.CodeUnauthorized)

// ErrUnableToFindSession is the error when our request has no token
var ErrUnableToFindSession = errors.New(
	"unable to find session",
	errors.CategoryAuth,
).WithCode(errors.CodeUnauthorized)

// ErrUnableToDecodeSession unable to decode claims into a session view
var ErrUnableToDecodeSession = errors.New(
	"unable to decode session",
	errors.CategoryAuth,
).WithCode(errors.CodeUnauthorized)

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.TextCode == code
	}
	return false
}

// IsMissingCredentialError reports a user correctable validation failure
func IsMissingCredentialError(err error) bool {
	return hasTextCode(err, TextCodeMissingCredential)
}

// IsInvalidCredentialError reports a rejected credential pair
func IsInvalidCredentialError(err error) bool {
	return hasTextCode(err, TextCodeInvalidCredential)
}

// IsConcurrentSessionError reports a blocked second login
func IsConcurrentSessionError(err error) bool {
	return hasTextCode(err, TextCodeConcurrentSession)
}

// IsIssuanceFailedError reports a persistence failure after verification
func IsIssuanceFailedError(err error) bool {
	return hasTextCode(err, TextCodeIssuanceFailed)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return hasTextCode(err, TextCodeTokenExpired) ||
		strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for unparseable or badly signed tokens
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return hasTextCode(err, TextCodeTokenMalformed) ||
		strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
