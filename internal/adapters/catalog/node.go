package catalog

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pyman/internal/core/ports"
)

// NodeID is the unique identifier for the registry store Graft node.
const NodeID graft.ID = "adapter.registry_store"

func init() {
	graft.Register(graft.Node[ports.RegistryStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RegistryStore, error) {
			return NewStore(), nil
		},
	})
}
