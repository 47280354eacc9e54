package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pyman/internal/core/ports"
)

const (
	// HasherNodeID is the unique identifier for the file hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// VerifierNodeID is the unique identifier for the file verifier Graft node.
	VerifierNodeID graft.ID = "adapter.fs.verifier"
	// ManifestWriterNodeID is the unique identifier for the requirements writer Graft node.
	ManifestWriterNodeID graft.ID = "adapter.fs.manifest_writer"
)

func init() {
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.Verifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Verifier, error) {
			return NewVerifier(), nil
		},
	})

	graft.Register(graft.Node[ports.ManifestWriter]{
		ID:        ManifestWriterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestWriter, error) {
			return NewManifestWriter(), nil
		},
	})
}
