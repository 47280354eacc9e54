package ports

import "go.trai.ch/pyman/internal/core/domain"

// InstallStateStore defines the interface for storing and retrieving install records.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type InstallStateStore interface {
	// Get retrieves the record of a project.
	// Returns nil, nil if not found.
	Get(project string) (*domain.InstallRecord, error)

	// Put stores the record, replacing any previous one for the same project.
	Put(record domain.InstallRecord) error
}

// InstallStateStoreFactory opens the install state store persisted at path.
type InstallStateStoreFactory func(path string) (InstallStateStore, error)
