package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pyman/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/pyman/internal/adapters/catalog"            //nolint:depguard // Wired in app layer
	"go.trai.ch/pyman/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/pyman/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/pyman/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/pyman/internal/core/ports"
	"go.trai.ch/pyman/internal/engine/installer"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles what the entry point needs besides the App itself.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			catalog.NodeID,
			cas.NodeID,
			installer.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			registryStore, err := graft.Dep[ports.RegistryStore](ctx)
			if err != nil {
				return nil, err
			}

			openState, err := graft.Dep[ports.InstallStateStoreFactory](ctx)
			if err != nil {
				return nil, err
			}

			inst, err := graft.Dep[*installer.Installer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, registryStore, openState, inst, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
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

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: telemetry,
	}, nil
}
