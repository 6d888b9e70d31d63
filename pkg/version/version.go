// Package version provides build version information.
// Version is set at build time via ldflags:
// go build -ldflags "-X github.com/Rorqualx/pisces/pkg/version.Version=1.0.0"
package version

import (
	"fmt"
	"runtime"
)

// Version is the application version, set at build time.
var Version = "dev"

// Full returns the full version string.
func Full() string {
	return Version
}

// GoVersion returns the Go runtime version.
func GoVersion() string {
	return runtime.Version()
}

// String describes the build for banners and --version output.
func String() string {
	return fmt.Sprintf("pisces %s (%s %s/%s)", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
