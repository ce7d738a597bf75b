// Package version holds build metadata injected with -ldflags.
package version

// Build metadata. Overridden at link time, e.g.
// -X github.com/bissquit/subscribers-api/internal/version.Version=1.2.0
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns the build metadata as a map suitable for JSON encoding.
func Info() map[string]string {
	return map[string]string{
		"version":    Version,
		"commit":     GitCommit,
		"build_date": BuildDate,
	}
}
