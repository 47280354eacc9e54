package venv

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pyman/internal/adapters/fs"
	"go.trai.ch/pyman/internal/adapters/logger"
	"go.trai.ch/pyman/internal/adapters/shell"
	"go.trai.ch/pyman/internal/core/ports"
)

// NodeID is the unique identifier for the provisioner Graft node.
const NodeID graft.ID = "adapter.venv.provisioner"

func init() {
	graft.Register(graft.Node[ports.Provisioner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, fs.VerifierNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Provisioner, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			verifier, err := graft.Dep[ports.Verifier](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewManager(runner, verifier, log), nil
		},
	})
}
