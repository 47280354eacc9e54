package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pyman/internal/adapters/logger"
	"go.trai.ch/pyman/internal/core/domain"
	"go.trai.ch/zerr"
)

func messages(entries []logger.ErrorEntry) []string {
	res := make([]string, 0, len(entries))
	for _, e := range entries {
		res = append(res, e.Message())
	}
	return res
}

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
	}{
		{
			name:         "standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
		},
		{
			name:         "zerr wrapped chain",
			err:          zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle layer"), "outer layer"),
			wantMessages: []string{"outer layer", "middle layer", "root cause"},
		},
		{
			name:         "joined sentinel and cause",
			err:          zerr.With(errors.Join(domain.ErrCommandFailed, errors.New("exit status 1")), "exit_code", 1),
			wantMessages: []string{"command failed", "exit status 1"},
		},
		{
			name:         "nil",
			err:          nil,
			wantMessages: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessages, messages(logger.CollectErrorEntries(tt.err)))
		})
	}
}

func TestCollectErrorEntries_Metadata(t *testing.T) {
	inner := zerr.With(zerr.New("inner"), "inner_key", "inner_val")
	outer := zerr.With(zerr.Wrap(inner, "outer"), "outer_key", "outer_val")

	entries := logger.CollectErrorEntries(outer)
	require.Len(t, entries, 2)
	assert.Equal(t, map[string]any{"outer_key": "outer_val"}, entries[0].Metadata())
	assert.Equal(t, map[string]any{"inner_key": "inner_val"}, entries[1].Metadata())
}

func TestCollectErrorEntries_EmptyWrapperMetadataMovesToCause(t *testing.T) {
	err := zerr.With(errors.Join(domain.ErrCommandFailed, errors.New("exit status 2")), "exit_code", 2)

	entries := logger.CollectErrorEntries(err)
	require.Len(t, entries, 2)
	assert.Equal(t, map[string]any{"exit_code": 2}, entries[0].Metadata())
}

func TestFormatErrorEntries(t *testing.T) {
	err := zerr.With(zerr.Wrap(domain.ErrInstallFailed, "failed to set up project"), "project", "api")

	got := logger.FormatErrorEntries(logger.CollectErrorEntries(err))
	want := "Error: failed to set up project\n" +
		"       project: api\n" +
		"\n" +
		"  Caused by:\n" +
		"    → failed to install package"
	assert.Equal(t, want, got)
}

func TestFormatErrorEntries_MultilineMessage(t *testing.T) {
	got := logger.FormatErrorEntries(logger.CollectErrorEntries(errors.New("line one\nline two")))
	assert.Equal(t, "Error: line one\n       line two", got)
}
