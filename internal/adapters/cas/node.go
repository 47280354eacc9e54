package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pyman/internal/core/ports"
)

// NodeID is the unique identifier for the install state store Graft node.
const NodeID graft.ID = "adapter.install_state_store"

func init() {
	graft.Register(graft.Node[ports.InstallStateStoreFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.InstallStateStoreFactory, error) {
			return Open, nil
		},
	})
}

// Open opens the store at path. It satisfies ports.InstallStateStoreFactory.
func Open(path string) (ports.InstallStateStore, error) {
	store, err := NewStore(path)
	if err != nil {
		return nil, err
	}
	return store, nil
}
