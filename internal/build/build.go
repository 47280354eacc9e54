// Package build holds build-time information.
package build

// Version is the pyman version.
// It defaults to "dev" and is overwritten with -ldflags "-X go.trai.ch/pyman/internal/build.Version=...".
var Version = "dev"
