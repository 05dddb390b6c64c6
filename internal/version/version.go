// Package version provides build-time version information.
package version

// These variables are set at build time via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Generator is the value of the generator meta tag in built decks.
func Generator() string {
	return "mdreveal " + Version
}

// UserAgent is sent with every HTTP request made by import.
func UserAgent() string {
	return "mdreveal/" + Version
}
