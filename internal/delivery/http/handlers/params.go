package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// 32 MiB covers a handful of base64-encoded print files.
const maxBodyBytes = 32 << 20

// pathParam returns the decoded URL parameter, so service names such as
// "B/N A4" can travel as "B%2FN%20A4".
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
