// Package gate implements the edge authorization decision: for every inbound
// request it yields exactly one pass/redirect outcome, applying locale-aware
// redirect targets on top of role-based access control. The gate is stateless
// across requests and fails closed: no error path ever yields a pass.
package gate

import (
	"context"
	"errors"
	"net/url"
	"time"
)

// AccessCookie is the cookie carrying the signed access token. The gate only
// reads it; it is written and cleared by the auth backend.
const AccessCookie = "acont_access"

// Verifier validates an opaque token string and extracts the identity it
// asserts. Called at most once per evaluation, and only when a token is
// present.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Identity is the verified principal handed back by the Verifier.
type Identity struct {
	Subject string
	Role    string
	JTI     string
}

// LocaleResolver maps a request path to its active locale segment. Must be
// pure and total, returning the default locale for unrecognized prefixes.
type LocaleResolver interface {
	FromPath(path string) string
}

// Request is the per-evaluation input. Immutable for the duration of one
// Evaluate call; nothing survives past it.
type Request struct {
	Path    string
	Cookies map[string]string
}

// Action says what the caller must do with the request.
type Action int

const (
	// ActionPass continues to the normal routing pipeline.
	ActionPass Action = iota
	// ActionRedirect issues an HTTP redirect to Decision.Target and stops.
	ActionRedirect
)

// Reason records why a decision was made, for logs, metrics, and the security
// audit trail. It never changes what the caller does with the decision.
type Reason string

const (
	ReasonPublic            Reason = "public"
	ReasonAuthorized        Reason = "authorized"
	ReasonMissingCredential Reason = "missing_credential"
	ReasonInvalidCredential Reason = "invalid_credential"
	ReasonUnknownRole       Reason = "unknown_role"
	ReasonWrongRole         Reason = "wrong_role"
)

// Decision is the gate's sole output. Redirect decisions always carry a
// locale-prefixed absolute target path; pass decisions carry none.
type Decision struct {
	Action Action
	Target string
	Reason Reason
	// Role, Subject, and Locale record what the evaluation established, for
	// logs and the audit trail; they never change what the caller does.
	Role    Role
	Subject string
	Locale  string
}

// Gate evaluates requests. Collaborators are injected so the gate can be
// exercised without the hosting runtime.
type Gate struct {
	verifier      Verifier
	locales       LocaleResolver
	verifyTimeout time.Duration
}

// DefaultVerifyTimeout bounds the verification call; an unbounded hang would
// make every protected path unreachable.
const DefaultVerifyTimeout = 2 * time.Second

// New builds a Gate. A non-positive verifyTimeout falls back to the default.
func New(verifier Verifier, locales LocaleResolver, verifyTimeout time.Duration) *Gate {
	if verifyTimeout <= 0 {
		verifyTimeout = DefaultVerifyTimeout
	}
	return &Gate{
		verifier:      verifier,
		locales:       locales,
		verifyTimeout: verifyTimeout,
	}
}

// Evaluate produces the decision for one request. It never returns an error:
// every failure mode (missing cookie, invalid or expired token, verifier
// outage, unrecognized role) degrades to a redirect.
func (g *Gate) Evaluate(ctx context.Context, req Request) Decision {
	locale := g.locales.FromPath(req.Path)
	class := classify(req.Path)

	// Public pages never require a token, even when one is present.
	if class == RoutePublic {
		return Decision{Action: ActionPass, Reason: ReasonPublic, Locale: locale}
	}

	tokenString, ok := req.Cookies[AccessCookie]
	if !ok || tokenString == "" {
		// Anonymous visitors keep their place: the login flow returns them
		// to the originally requested path.
		return Decision{
			Action: ActionRedirect,
			Target: loginPath(locale) + "?next=" + url.QueryEscape(req.Path),
			Reason: ReasonMissingCredential,
			Locale: locale,
		}
	}

	identity, err := g.verify(ctx, tokenString)
	if err != nil || identity == nil {
		return Decision{
			Action: ActionRedirect,
			Target: loginPath(locale),
			Reason: ReasonInvalidCredential,
			Locale: locale,
		}
	}

	role := Role(identity.Role)
	if !role.Known() {
		return Decision{
			Action:  ActionRedirect,
			Target:  loginPath(locale),
			Reason:  ReasonUnknownRole,
			Subject: identity.Subject,
			Locale:  locale,
		}
	}

	if role != requiredRole(class) {
		return Decision{
			Action:  ActionRedirect,
			Target:  homePath(role, locale),
			Reason:  ReasonWrongRole,
			Role:    role,
			Subject: identity.Subject,
			Locale:  locale,
		}
	}

	return Decision{Action: ActionPass, Reason: ReasonAuthorized, Role: role, Subject: identity.Subject, Locale: locale}
}

// verify calls the Verifier exactly once with a bounded timeout, absorbing
// panics so a misbehaving collaborator cannot turn into a pass or a 500.
func (g *Gate) verify(ctx context.Context, tokenString string) (identity *Identity, err error) {
	ctx, cancel := context.WithTimeout(ctx, g.verifyTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			identity = nil
			err = errVerifierPanic
		}
	}()

	return g.verifier.Verify(ctx, tokenString)
}

var errVerifierPanic = errors.New("verifier panicked")

func loginPath(locale string) string {
	return "/" + locale + "/auth/login"
}
