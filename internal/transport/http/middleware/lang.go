package middleware

import (
	"net/http"

	"shiftpay/internal/platform/i18n"
	"shiftpay/internal/requestctx"
)

// Lang negotiates the report language from the lang query parameter or
// the Accept-Language header.
func Lang(tr *i18n.Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := tr.Match(r.Header.Get("Accept-Language"))
			if explicit := r.URL.Query().Get("lang"); explicit != "" {
				lang = tr.Resolve(explicit)
			}
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(requestctx.WithLang(r.Context(), lang)))
		})
	}
}
