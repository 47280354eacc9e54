package ports

import "go.trai.ch/pyman/internal/core/domain"

// ManifestWriter persists environment snapshots as requirements files.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest_writer.go -destination=mocks/mock_manifest_writer.go -package=mocks
type ManifestWriter interface {
	// Write renders manifest to path, creating parent directories as needed.
	Write(path string, manifest *domain.Manifest) error
}
