// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/solres/internal/adapters/cache"
	_ "go.trai.ch/solres/internal/adapters/compiler"
	_ "go.trai.ch/solres/internal/adapters/config"
	_ "go.trai.ch/solres/internal/adapters/fs"
	_ "go.trai.ch/solres/internal/adapters/index"
	_ "go.trai.ch/solres/internal/adapters/logger"
	_ "go.trai.ch/solres/internal/adapters/project"
	_ "go.trai.ch/solres/internal/adapters/registry"
	_ "go.trai.ch/solres/internal/adapters/telemetry"
	_ "go.trai.ch/solres/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/solres/internal/app"
	_ "go.trai.ch/solres/internal/engine/bundler"
	_ "go.trai.ch/solres/internal/engine/graph"
	_ "go.trai.ch/solres/internal/engine/resolver"
)
