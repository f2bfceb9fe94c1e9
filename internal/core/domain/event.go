package domain

import "time"

// AuthAction identifies what an audit event records.
type AuthAction string

const (
	ActionLoginSucceeded AuthAction = "login_succeeded"
	ActionLoginFailed    AuthAction = "login_failed"
	ActionRegistered     AuthAction = "registered"
)

// AuthEvent is an audit-trail entry for an authentication action.
type AuthEvent struct {
	Email     string
	Action    AuthAction
	Timestamp time.Time
	RemoteIP  string
}
