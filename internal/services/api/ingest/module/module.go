// Package module wires the key-protected ingest endpoints into the API
package module

import (
	"net/http"

	modkit "vidqa/internal/modkit"
	"vidqa/internal/modkit/httpkit"
	str "vidqa/internal/platform/strings"
	ingesthttp "vidqa/internal/services/api/ingest/http"
	ingdom "vidqa/internal/services/ingest/domain"
)

// Ports declares the required injected worker port(s) for this API module
type Ports struct {
	Processor ingdom.ProcessorPort
	Queue     ingdom.QueuePort
}

// Module implements the ingest API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs the ingest API module. All endpoints sit behind the
// X-API-Key middleware; an empty configured key leaves them open for local use
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("ingest"),
		modkit.WithPrefix("/ingest"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Processor == nil || injected.Queue == nil {
		panic("ingest API module requires Processor and Queue ports (from services/ingest)")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       append([]func(http.Handler) http.Handler{httpkit.APIKey(cfg.APIKey)}, b.Mw...),
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
	}
	m.ports = injected

	external := b.Register
	m.register = func(r httpkit.Router) {
		ingesthttp.Register(r, ingesthttp.Ports{
			Processor: injected.Processor,
			Queue:     injected.Queue,
		})
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
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
