// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pyman/internal/adapters/cas"
	_ "go.trai.ch/pyman/internal/adapters/catalog"
	_ "go.trai.ch/pyman/internal/adapters/config"
	_ "go.trai.ch/pyman/internal/adapters/fs"
	_ "go.trai.ch/pyman/internal/adapters/logger"
	_ "go.trai.ch/pyman/internal/adapters/shell"
	_ "go.trai.ch/pyman/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/pyman/internal/adapters/venv"
	// Register app and engine nodes.
	_ "go.trai.ch/pyman/internal/app"
	_ "go.trai.ch/pyman/internal/engine/installer"
)
