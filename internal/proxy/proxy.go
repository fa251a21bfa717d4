// Package proxy forwards traffic to the two upstreams behind the edge: the
// rendering app (everything the gate passes) and the REST backend (the /api
// subtree). The backend proxy bridges cookie-based browser sessions onto the
// bearer-token API: the access cookie is promoted to an Authorization header
// on the way in, and backend Set-Cookie headers are rewritten first-party on
// the way out.
package proxy

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"acont-edge/internal/gate"
	"acont-edge/internal/platform/metrics"
)

// Backend builds the /api reverse proxy. The /api prefix is stripped before
// forwarding.
func Backend(backendURL *url.URL, logger *slog.Logger, m *metrics.Metrics) http.Handler {
	rp := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(backendURL)
			pr.Out.URL.Path = strings.TrimPrefix(pr.In.URL.Path, "/api")
			if pr.Out.URL.Path == "" {
				pr.Out.URL.Path = "/"
			}
			pr.SetXForwarded()

			// Promote the session cookie to a bearer header unless the
			// caller already authenticated explicitly.
			if pr.Out.Header.Get("Authorization") == "" {
				if c, err := pr.In.Cookie(gate.AccessCookie); err == nil && c.Value != "" {
					pr.Out.Header.Set("Authorization", "Bearer "+c.Value)
				}
			}
		},
		ModifyResponse: func(resp *http.Response) error {
			rewriteSetCookies(resp)
			return nil
		},
		ErrorHandler: errorHandler("backend", logger, m),
	}
	return rp
}

// Upstream builds the pass-through proxy for the rendering app.
func Upstream(upstreamURL *url.URL, logger *slog.Logger, m *metrics.Metrics) http.Handler {
	rp := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(upstreamURL)
			pr.SetXForwarded()
		},
		ErrorHandler: errorHandler("upstream", logger, m),
	}
	return rp
}

// rewriteSetCookies makes backend cookies first-party: the Domain attribute
// is dropped so the cookie binds to the edge host, and SameSite is forced to
// Lax.
func rewriteSetCookies(resp *http.Response) {
	lines := resp.Header.Values("Set-Cookie")
	if len(lines) == 0 {
		return
	}
	resp.Header.Del("Set-Cookie")
	for _, line := range lines {
		cookie, err := http.ParseSetCookie(line)
		if err != nil {
			// Unparseable cookies pass through untouched.
			resp.Header.Add("Set-Cookie", line)
			continue
		}
		cookie.Domain = ""
		cookie.SameSite = http.SameSiteLaxMode
		if cookie.Path == "" {
			cookie.Path = "/"
		}
		resp.Header.Add("Set-Cookie", cookie.String())
	}
}

func errorHandler(upstream string, logger *slog.Logger, m *metrics.Metrics) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		logger.ErrorContext(r.Context(), "upstream unavailable",
			"upstream", upstream,
			"path", r.URL.Path,
			"error", err,
		)
		m.IncrementProxyError(upstream)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"backend_unavailable"}`))
	}
}
