package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tome/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/tome/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/tome/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/tome/internal/adapters/metrics" //nolint:depguard // Wired in app layer
	"go.trai.ch/tome/internal/adapters/parser"  //nolint:depguard // Wired in app layer
	"go.trai.ch/tome/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/tome/internal/engine/builder"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			builder.NodeID,
			fs.WalkerNodeID,
			parser.NodeID,
			watcher.NodeID,
			metrics.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	docBuilder, err := graft.Dep[*builder.Builder](ctx)
	if err != nil {
		return nil, err
	}
	walker, err := graft.Dep[ports.SourceWalker](ctx)
	if err != nil {
		return nil, err
	}
	docParser, err := graft.Dep[ports.Parser](ctx)
	if err != nil {
		return nil, err
	}
	watchers, err := graft.Dep[ports.WatcherFactory](ctx)
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

	return New(loader, docBuilder, walker, docParser, watchers, recorder, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
