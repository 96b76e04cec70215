// Package api provides the HTTP API for the application
package api

import (
	"vidqa/internal/platform/config"
	"vidqa/internal/platform/logger"
	phttp "vidqa/internal/platform/net/http"
	"vidqa/internal/platform/store"

	"vidqa/internal/modkit"
	"vidqa/internal/modkit/httpkit"
	"vidqa/internal/modkit/module"
	"vidqa/internal/modkit/swaggerkit"

	apiingest "vidqa/internal/services/api/ingest/module"
	metamod "vidqa/internal/services/api/meta/module"
	qamod "vidqa/internal/services/api/qa/module"
	videosmod "vidqa/internal/services/api/videos/module"

	// Worker ingest module (owns the Processor and Queue ports)
	workeringest "vidqa/internal/services/ingest/module"
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

	// Construct the WORKER ingest module first and extract its ports
	workerIngest := workeringest.New(deps)
	wp := module.MustPortsOf[workeringest.Ports](workerIngest)

	// Inject the worker ports into the API ingest module
	apiIngest := apiingest.New(
		deps,
		modkit.WithPorts(apiingest.Ports{
			Processor: wp.Processor,
			Queue:     wp.Queue,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		videosmod.New(deps),
		qamod.New(deps),
		workerIngest, // include worker so its ports are registered
		apiIngest,    // API module that depends on the worker's ports
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its own prefix
			m.MountRoutes(api)
		}
	})
}
