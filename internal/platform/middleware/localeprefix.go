package middleware

import (
	"net/http"

	"acont-edge/internal/locale"
)

// LocalePrefix enforces locale-always routing: paths without a supported
// locale prefix are redirected to the same path under the negotiated locale.
// The bare root honors Accept-Language; everything else goes to the default
// so shared links stay stable.
func LocalePrefix(locales *locale.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if locales.HasPrefix(path) {
				next.ServeHTTP(w, r)
				return
			}

			var target string
			if path == "/" || path == "" {
				target = "/" + locales.Negotiate(r.Header.Get("Accept-Language"))
			} else {
				target = "/" + locales.Default() + path
			}
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
		})
	}
}
