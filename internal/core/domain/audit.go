package domain

import "time"

// LoginOutcome is the externally visible result class of a login attempt.
type LoginOutcome string

const (
	OutcomeSuccess            LoginOutcome = "success"
	OutcomeInvalidCredentials LoginOutcome = "invalid_credentials"
	OutcomeMalformed          LoginOutcome = "malformed"
	OutcomeDependencyFailure  LoginOutcome = "dependency_failure"
)

// Reasons recorded in the audit trail only. They never reach the caller.
const (
	ReasonUnknownIdentifier = "unknown_identifier"
	ReasonSecretMismatch    = "secret_mismatch"
	ReasonLookupFailed      = "lookup_failed"
	ReasonTokenFailed       = "token_failed"
)

// LoginAudit is one login attempt as written to the internal audit sink.
// It never carries the presented secret or the stored hash.
type LoginAudit struct {
	Identifier string
	Outcome    LoginOutcome
	Reason     string
	AccountID  int64
	At         time.Time
}
