package module

import (
	stdhttp "net/http"

	"repairlog/internal/modkit/httpkit"
	"repairlog/internal/platform/net/middleware"
	"repairlog/internal/services/api/session/domain"
)

// Ports bundles what the session module offers other modules
type Ports struct {
	// Session resolves and revokes sessions
	Session domain.ServicePort

	// Auth guards routes by resolving the bearer token to a user id
	Auth middleware.AuthPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// authPort adapts the session service to the middleware seam
type authPort struct{ svc domain.ServicePort }

// Parse resolves the request's bearer token to a user id
func (a authPort) Parse(r *stdhttp.Request) (string, error) {
	sess, err := a.svc.Current(r.Context(), httpkit.BearerToken(r))
	if err != nil {
		return "", err
	}
	return sess.UserID, nil
}
