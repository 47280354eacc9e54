package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pyman/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	assert.Equal(t, domain.NewInternedString("requests"), domain.NewInternedString("requests"),
		"identical strings must share a handle")
	assert.NotEqual(t, domain.NewInternedString("requests"), domain.NewInternedString("Requests"))
}
