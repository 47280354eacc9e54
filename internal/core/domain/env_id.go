package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
)

// GenerateEnvID creates a deterministic hash identifying the environment that installing
// plan with interpreter would produce. The plan order does not affect the result.
func GenerateEnvID(interpreter string, plan []PackageSpec) string {
	specs := make([]string, 0, len(plan))
	for _, spec := range plan {
		specs = append(specs, spec.Name+"@"+spec.VersionOrLatest())
	}
	slices.Sort(specs)

	var builder strings.Builder
	builder.WriteString(interpreter)
	builder.WriteString(";")
	for _, spec := range specs {
		builder.WriteString(spec)
		builder.WriteString(";")
	}

	hash := sha256.Sum256([]byte(builder.String()))
	return hex.EncodeToString(hash[:])
}
