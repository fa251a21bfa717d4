// Package audit records security-relevant gate outcomes for observability and
// SIEM fan-out. Only anomalies are audited: invalid credentials, unknown
// roles, and denied role access. Missing-credential redirects are expected
// anonymous traffic and stay out of the trail.
package audit

import (
	"context"
	"time"
)

// Action names the audited occurrence.
type Action string

const (
	// ActionInvalidCredential is a cookie that failed verification
	// (signature, expiry, issuer, revocation, or verifier outage).
	ActionInvalidCredential Action = "invalid_credential"
	// ActionUnknownRole is a verified token whose role claim is not a
	// recognized tag.
	ActionUnknownRole Action = "unknown_role"
	// ActionRoleDenied is a verified principal reaching for the other
	// role's subtree.
	ActionRoleDenied Action = "role_denied"
)

// Event is emitted per denied request. Keep it transport-agnostic so stores
// and sinks can fan out.
type Event struct {
	Timestamp time.Time
	Action    Action
	Path      string
	Locale    string
	Role      string
	Subject   string
	Target    string
	RequestID string
}

// Store persists audit events, append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
}
