package errors

import "errors"

// Key generation errors indicate the external primitive could not produce
// the requested artifacts.
var (
	// ErrToolUnavailable indicates the openssl binary could not be found on PATH.
	ErrToolUnavailable = errors.New("openssl not found on PATH")

	// ErrGenerationFailed indicates the key generation tool ran but reported failure.
	ErrGenerationFailed = errors.New("key generation failed")
)

// Verification errors indicate the on-disk state does not match what
// provisioning reported.
var (
	// ErrVerificationMismatch indicates one or more locations lack artifacts
	// even though provisioning did not report a failure for them.
	ErrVerificationMismatch = errors.New("key verification found missing artifacts")

	// ErrPublicKeyNotFound indicates a public key could not be located.
	ErrPublicKeyNotFound = errors.New("public key not found")

	// ErrInvalidPublicKey indicates the public key is malformed or not RSA.
	ErrInvalidPublicKey = errors.New("invalid or unsupported public key format")
)

// Project state errors indicate issues with configuration or the audit log.
var (
	// ErrInvalidProjectConfig indicates .stormkeys/config.toml is malformed.
	ErrInvalidProjectConfig = errors.New("project configuration is invalid")

	// ErrNoAuditLog indicates no audit log exists for the project yet.
	ErrNoAuditLog = errors.New("no audit log found")

	// ErrUnknownOutcome indicates an outcome value outside the known set.
	ErrUnknownOutcome = errors.New("unknown provisioning outcome")
)
