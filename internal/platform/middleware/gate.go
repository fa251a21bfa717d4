package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"acont-edge/internal/audit"
	"acont-edge/internal/gate"
	"acont-edge/internal/platform/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Auditor receives security events for denied requests.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event) error
}

var tracer = otel.Tracer("acont-edge/gate")

// Gate runs the edge authorization decision for every request and translates
// it to HTTP: pass continues down the chain, redirect answers 307 and stops.
// The decision itself can never error; everything below observes it.
func Gate(g *gate.Gate, logger *slog.Logger, m *metrics.Metrics, auditor Auditor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(r.Context(), "gate.evaluate",
				trace.WithAttributes(attribute.String("http.path", r.URL.Path)))
			defer span.End()

			cookies := make(map[string]string, len(r.Cookies()))
			for _, c := range r.Cookies() {
				cookies[c.Name] = c.Value
			}

			start := time.Now()
			decision := g.Evaluate(ctx, gate.Request{Path: r.URL.Path, Cookies: cookies})
			took := time.Since(start)

			actionLabel := "pass"
			if decision.Action == gate.ActionRedirect {
				actionLabel = "redirect"
			}
			m.ObserveDecision(actionLabel, string(decision.Reason), took)
			span.SetAttributes(
				attribute.String("gate.action", actionLabel),
				attribute.String("gate.reason", string(decision.Reason)),
			)

			observeVerification(m, decision.Reason)
			logDecision(ctx, logger, r.URL.Path, decision)
			auditDecision(ctx, logger, auditor, r.URL.Path, decision)

			if decision.Action == gate.ActionRedirect {
				http.Redirect(w, r, decision.Target, http.StatusTemporaryRedirect)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// observeVerification counts verification outcomes; only reasons reached by
// actually calling the verifier are counted.
func observeVerification(m *metrics.Metrics, reason gate.Reason) {
	switch reason {
	case gate.ReasonInvalidCredential:
		m.IncrementVerification("failure")
	case gate.ReasonAuthorized, gate.ReasonUnknownRole, gate.ReasonWrongRole:
		m.IncrementVerification("success")
	}
}

func logDecision(ctx context.Context, logger *slog.Logger, path string, decision gate.Decision) {
	attrs := []any{
		"path", path,
		"reason", string(decision.Reason),
		"target", decision.Target,
		"request_id", GetRequestID(ctx),
	}
	switch decision.Reason {
	case gate.ReasonInvalidCredential:
		logger.WarnContext(ctx, "access denied - invalid token", attrs...)
	case gate.ReasonUnknownRole, gate.ReasonWrongRole:
		logger.InfoContext(ctx, "access denied - role mismatch", attrs...)
	case gate.ReasonMissingCredential:
		// Expected anonymous traffic; keep it out of the signal.
		logger.DebugContext(ctx, "anonymous visitor redirected to login", attrs...)
	}
}

func auditDecision(ctx context.Context, logger *slog.Logger, auditor Auditor, path string, decision gate.Decision) {
	if auditor == nil {
		return
	}

	var action audit.Action
	switch decision.Reason {
	case gate.ReasonInvalidCredential:
		action = audit.ActionInvalidCredential
	case gate.ReasonUnknownRole:
		action = audit.ActionUnknownRole
	case gate.ReasonWrongRole:
		action = audit.ActionRoleDenied
	default:
		return
	}

	event := audit.Event{
		Action:    action,
		Path:      path,
		Locale:    decision.Locale,
		Role:      string(decision.Role),
		Subject:   decision.Subject,
		Target:    decision.Target,
		RequestID: GetRequestID(ctx),
	}
	if err := auditor.Emit(ctx, event); err != nil {
		logger.ErrorContext(ctx, "failed to emit security event",
			"error", err,
			"request_id", GetRequestID(ctx),
		)
	}
}
