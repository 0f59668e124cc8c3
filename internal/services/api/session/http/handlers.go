// Package http provides http transport for session state
package http

import (
	stdhttp "net/http"

	"repairlog/internal/modkit/httpkit"
	svc "repairlog/internal/services/api/session/service"
)

// Register mounts session endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// present/absent session check, drives the client-side guard
	httpkit.Get(r, "/", h.current)

	httpkit.Post(r, "/signout", h.signOut)
}

type handlers struct{ svc svc.Service }

// @Summary Current session
// @Tags Session
// @Produce json
// @Success 200 {object} domain.Session "ok"
// @Failure 401 {object} httpkit.Envelope "no active session"
// @Router /session [get]
func (h *handlers) current(r *stdhttp.Request) (any, error) {
	return h.svc.Current(r.Context(), httpkit.BearerToken(r))
}

// @Summary Sign out
// @Tags Session
// @Produce json
// @Success 200 {object} map[string]bool "ok"
// @Router /session/signout [post]
func (h *handlers) signOut(r *stdhttp.Request) (any, error) {
	if err := h.svc.SignOut(r.Context(), httpkit.BearerToken(r)); err != nil {
		return nil, err
	}
	return map[string]bool{"signed_out": true}, nil
}
