package ports

import (
	"context"

	"go.trai.ch/pyman/internal/core/domain"
)

// CommandRunner defines the interface for running external processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=command_runner.go -destination=mocks/mock_command_runner.go -package=mocks
type CommandRunner interface {
	// Run executes cmd and returns its standard output.
	//
	// Output is also streamed to the Vertex attached to ctx, if any.
	// A non-zero exit status is reported as an error carrying the captured stderr.
	Run(ctx context.Context, cmd *domain.Command) ([]byte, error)
}
