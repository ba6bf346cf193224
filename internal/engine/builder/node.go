package builder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tome/internal/adapters/assets"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tome/internal/adapters/cache"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tome/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tome/internal/adapters/html"               //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tome/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tome/internal/adapters/metrics"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tome/internal/adapters/parser"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tome/internal/adapters/search"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tome/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tome/internal/adapters/xref"               //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/tome/internal/engine/extensions"
)

// NodeID is the unique identifier for the builder Graft node.
const NodeID graft.ID = "engine.builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.WalkerNodeID,
			fs.VerifierNodeID,
			parser.NodeID,
			html.NodeID,
			cache.NodeID,
			search.NodeID,
			xref.NodeID,
			assets.NodeID,
			extensions.NodeID,
			progrock.NodeID,
			metrics.NodeID,
			logger.NodeID,
		},
		Run: runBuilderNode,
	})
}

func runBuilderNode(ctx context.Context) (*Builder, error) {
	walker, err := graft.Dep[ports.SourceWalker](ctx)
	if err != nil {
		return nil, err
	}
	verifier, err := graft.Dep[ports.OutputVerifier](ctx)
	if err != nil {
		return nil, err
	}
	docParser, err := graft.Dep[ports.Parser](ctx)
	if err != nil {
		return nil, err
	}
	renderer, err := graft.Dep[ports.Renderer](ctx)
	if err != nil {
		return nil, err
	}
	caches, err := graft.Dep[ports.CacheFactory](ctx)
	if err != nil {
		return nil, err
	}
	searchIndex, err := graft.Dep[*search.Finisher](ctx)
	if err != nil {
		return nil, err
	}
	xrefIndex, err := graft.Dep[*xref.Finisher](ctx)
	if err != nil {
		return nil, err
	}
	staticAssets, err := graft.Dep[*assets.Finisher](ctx)
	if err != nil {
		return nil, err
	}
	registry, err := graft.Dep[*extensions.Registry](ctx)
	if err != nil {
		return nil, err
	}
	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}
	recorder, err := graft.Dep[ports.MetricsRecorder](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(Deps{
		Walker:    walker,
		Parser:    docParser,
		Renderer:  renderer,
		Verifier:  verifier,
		Caches:    caches,
		Finishers: []ports.Finisher{xrefIndex, staticAssets, searchIndex},
		Registry:  registry,
		Telemetry: telemetry,
		Metrics:   recorder,
		Logger:    log,
	}), nil
}
