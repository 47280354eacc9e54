package ports

import "go.trai.ch/pyman/internal/core/domain"

// RegistryStore defines the interface for persisting a package registry.
//
//go:generate go run go.uber.org/mock/mockgen -source=registry_store.go -destination=mocks/mock_registry_store.go -package=mocks
type RegistryStore interface {
	// Load reads the registry stored at path. A missing file yields an empty registry.
	Load(path string) (*domain.Registry, error)

	// Save writes every entry of reg to path, replacing its previous content.
	Save(path string, reg *domain.Registry) error
}
