// Package version holds the program name and version shown in the welcome
// banner and by --version.
package version

// Name and Version are fixed at build time. Version may be overridden with
// -ldflags "-X github.com/Iron-Ham/peek/internal/version.Version=1.2.3".
var (
	Name    = "peek"
	Version = "0.1.0"
)

// Banner returns the "<name> - <version>" text centred on the welcome row.
func Banner() string {
	return Name + " - " + Version
}
