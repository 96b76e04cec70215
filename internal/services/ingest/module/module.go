// Package module provides the ingest module implementation
package module

import (
	"context"

	"vidqa/internal/modkit"

	"vidqa/internal/adapters/classify"
	"vidqa/internal/adapters/youtube"
	"vidqa/internal/core/taxonomy"
	phttp "vidqa/internal/platform/net/http"
	"vidqa/internal/services/ingest/domain"
	"vidqa/internal/services/ingest/repo"
	"vidqa/internal/services/ingest/service"
)

// Ports defines the ingest module ports
type Ports struct {
	Processor domain.ProcessorPort
	Queue     domain.QueuePort
}

// Module implements the ingest module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the ingest module
// It wires the adapters and the service using config from deps.Cfg
// It does not mount any routes; the api service exposes ingest over HTTP
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	yt := youtube.NewClient(youtube.Options{
		APIKey:     opts.YouTubeAPIKey,
		RPS:        float64(opts.YouTubeRPS),
		MaxRetries: opts.YouTubeRetries,
		Timeout:    opts.YouTubeTimeout,
	})

	tax, err := taxonomy.Load(opts.TaxonomyPath)
	if err != nil {
		deps.Log.Warn().Err(err).Str("path", opts.TaxonomyPath).Msg("taxonomy load failed, classification unrestricted")
		tax = taxonomy.Taxonomy{}
	}

	cls := classify.New(classify.Options{
		APIKey: opts.GeminiAPIKey,
		Model:  opts.GeminiModel,
	})

	svc := service.New(
		service.Config{
			SkipClassification: opts.SkipClassification,
			PreviewLength:      opts.PreviewLength,
			RequestDelay:       opts.RequestDelay,
		},
		metadataAdapter{c: yt},
		transcriptAdapter{c: yt},
		playlistAdapter{c: yt},
		classifierAdapter{c: cls, tax: tax},
		deps.PG,
		repo.NewPG(),
		repo.NewQueuePG(),
	)

	m := &Module{deps: deps}
	m.ports = Ports{Processor: svc, Queue: svc}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return "ingest" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Prefix returns the module prefix (none)
func (m *Module) Prefix() string { return "" }

// MountRoutes is a no-op as ingest has no routes of its own
func (m *Module) MountRoutes(_ phttp.Router) {}

// adapters narrowing the concrete clients to the domain ports

type metadataAdapter struct{ c *youtube.Client }

func (a metadataAdapter) Metadata(ctx context.Context, youtubeID string) (*domain.Metadata, error) {
	md, err := a.c.Metadata(ctx, youtubeID)
	if err != nil {
		return nil, err
	}
	return &domain.Metadata{
		YouTubeID:    md.YouTubeID,
		Title:        md.Title,
		Description:  md.Description,
		ChannelID:    md.ChannelID,
		ChannelTitle: md.ChannelTitle,
		PublishedAt:  md.PublishedAt,
	}, nil
}

type transcriptAdapter struct{ c *youtube.Client }

func (a transcriptAdapter) Transcript(ctx context.Context, youtubeID string) ([]domain.Segment, error) {
	return a.c.Transcript(ctx, youtubeID)
}

type playlistAdapter struct{ c *youtube.Client }

func (a playlistAdapter) PlaylistVideoIDs(ctx context.Context, playlistID string) ([]string, error) {
	return a.c.PlaylistVideoIDs(ctx, playlistID)
}

type classifierAdapter struct {
	c   *classify.Classifier
	tax taxonomy.Taxonomy
}

func (a classifierAdapter) Enabled() bool { return a.c.Enabled() }

func (a classifierAdapter) Classify(ctx context.Context, question, answer string) (*domain.Classification, error) {
	cls, err := a.c.Classify(ctx, question, answer, a.tax)
	if err != nil {
		return nil, err
	}
	return &domain.Classification{
		Category:    cls.Category,
		Subcategory: cls.Subcategory,
		Tags:        cls.Tags,
	}, nil
}
