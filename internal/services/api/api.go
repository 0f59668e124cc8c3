// Package api provides the HTTP API for the application
package api

import (
	"repairlog/internal/platform/config"
	"repairlog/internal/platform/logger"
	phttp "repairlog/internal/platform/net/http"
	"repairlog/internal/platform/store"

	"repairlog/internal/modkit"
	"repairlog/internal/modkit/httpkit"
	"repairlog/internal/modkit/module"
	"repairlog/internal/modkit/swaggerkit"

	metamod "repairlog/internal/services/api/meta/module"
	repairsmod "repairlog/internal/services/api/repairs/module"
	sessionmod "repairlog/internal/services/api/session/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Store         *store.Store
	Logger        *logger.Logger
	EnableSwagger bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// session owns the auth seam everything record-facing sits behind
	session := sessionmod.New(deps)
	auth := sessionmod.AuthPort(session)

	meta := metamod.New(deps)
	repairs := repairsmod.New(deps)

	public := []module.Module{meta, session}
	guarded := []module.Module{repairs}

	swaggerkit.Mount(r, opt.EnableSwagger)

	// versioned API with a common middleware stack
	httpkit.MountUnder(r, "/api/v1", httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range public {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}

		// record routes require a resolvable session
		httpkit.Protected(api, auth, func(pr httpkit.Router) {
			for _, m := range guarded {
				module.Register(m.Name(), m.Ports())
				m.MountRoutes(pr)
			}
		})
	})
}
