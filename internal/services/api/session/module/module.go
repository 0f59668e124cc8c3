// Package module wires the session guard into the API using modkit
package module

import (
	stdhttp "net/http"
	"time"

	"repairlog/internal/adapters/identity"
	modkit "repairlog/internal/modkit"
	"repairlog/internal/modkit/httpkit"
	"repairlog/internal/platform/net/middleware"
	sessionhttp "repairlog/internal/services/api/session/http"
	sessionsvc "repairlog/internal/services/api/session/service"
)

// Module implements the session module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(stdhttp.Handler) stdhttp.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc sessionsvc.Service
}

// New constructs the session module. The identity provider endpoint is read
// from IDENTITY_* config on the module's Conf.
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("session"),
		modkit.WithPrefix("/session"),
	}, opts...)...)

	idCfg := deps.Cfg.Prefix("IDENTITY_")
	provider := identity.New(identity.Options{
		BaseURL: idCfg.MustString("URL"),
		APIKey:  idCfg.MayString("APIKEY", ""),
		Timeout: idCfg.MayDuration("TIMEOUT", 10*time.Second),
	})
	svc := sessionsvc.New(provider)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{
		Session: svc,
		Auth:    authPort{svc: svc},
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		sessionhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// AuthPort returns the middleware auth seam without going through the registry
func AuthPort(m modkit.Module) middleware.AuthPort {
	sm, ok := m.(*Module)
	if !ok {
		panic("session.AuthPort requires the session module")
	}
	return sm.ports.(Ports).Auth
}
