package installer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pyman/internal/adapters/fs"
	"go.trai.ch/pyman/internal/adapters/logger"
	"go.trai.ch/pyman/internal/adapters/telemetry/progrock"
	"go.trai.ch/pyman/internal/adapters/venv"
	"go.trai.ch/pyman/internal/core/ports"
)

// NodeID is the unique identifier for the installer Graft node.
const NodeID graft.ID = "engine.installer"

func init() {
	graft.Register(graft.Node[*Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			venv.NodeID,
			fs.ManifestWriterNodeID,
			fs.HasherNodeID,
			fs.VerifierNodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Installer, error) {
			provisioner, err := graft.Dep[ports.Provisioner](ctx)
			if err != nil {
				return nil, err
			}

			writer, err := graft.Dep[ports.ManifestWriter](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			verifier, err := graft.Dep[ports.Verifier](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(
				provisioner,
				writer,
				hasher,
				verifier,
				telemetry,
				log,
			), nil
		},
	})
}
