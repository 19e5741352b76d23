package version

// Build metadata injected with -ldflags "-X github.com/ericogr/giera/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

// Info returns the build metadata as a flat map for the version endpoint.
func Info() map[string]string {
	return map[string]string{
		"version": Version,
		"commit":  Commit,
		"date":    Date,
		"dirty":   Dirty,
	}
}
