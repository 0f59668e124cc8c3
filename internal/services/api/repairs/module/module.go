// Package module wires repairs into the API using modkit
package module

import (
	stdhttp "net/http"

	modkit "repairlog/internal/modkit"
	"repairlog/internal/modkit/httpkit"
	"repairlog/internal/platform/logger"
	repairshttp "repairlog/internal/services/api/repairs/http"
	repairsrepo "repairlog/internal/services/api/repairs/repo"
	repairssvc "repairlog/internal/services/api/repairs/service"
)

// Module implements the repairs module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(stdhttp.Handler) stdhttp.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc repairssvc.Service
}

// New constructs the repairs module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("repairs"),
		modkit.WithPrefix("/repairs"),
	}, opts...)...)

	binder := repairsrepo.NewPG()
	svc := repairssvc.New(deps.PG, binder, logger.Named("repairs").With().Logger())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptRepairsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		repairshttp.Register(r, m.svc)
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
