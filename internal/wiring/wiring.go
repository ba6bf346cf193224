// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/tome/internal/adapters/assets"
	_ "go.trai.ch/tome/internal/adapters/cache"
	_ "go.trai.ch/tome/internal/adapters/config"
	_ "go.trai.ch/tome/internal/adapters/fs"
	_ "go.trai.ch/tome/internal/adapters/html"
	_ "go.trai.ch/tome/internal/adapters/logger"
	_ "go.trai.ch/tome/internal/adapters/metrics"
	_ "go.trai.ch/tome/internal/adapters/parser"
	_ "go.trai.ch/tome/internal/adapters/search"
	_ "go.trai.ch/tome/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/tome/internal/adapters/watcher"
	_ "go.trai.ch/tome/internal/adapters/xref"
	// Register app and engine nodes.
	_ "go.trai.ch/tome/internal/app"
	_ "go.trai.ch/tome/internal/engine/builder"
	_ "go.trai.ch/tome/internal/engine/extensions"
)
