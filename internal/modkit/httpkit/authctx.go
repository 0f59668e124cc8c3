package httpkit

import (
	"net/http"

	perrs "repairlog/internal/platform/errors"
	pnet "repairlog/internal/platform/net"
)

// User returns the authenticated user id from the request context
func User(r *http.Request) (string, error) {
	uid := pnet.UserID(r.Context())
	if uid == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return uid, nil
}

// BearerToken returns the raw bearer token on the request, or "" when absent
func BearerToken(r *http.Request) string {
	s := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):]
	}
	return ""
}
