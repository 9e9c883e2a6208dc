// Package version holds the product name and the build's semantic version.
package version

import "fmt"

// Product is the display name shown in the frame title.
const Product = "PHP DocBook"

// Version is set at link time via
// `-ldflags -X github.com/phpdocbook/docbook/internal/version.Version=...`.
var Version = "0.3.1"

// Title returns the frame title for the given version, e.g. "PHP DocBook 0.3.1".
func Title(v string) string {
	return fmt.Sprintf("%s %s", Product, v)
}

// Current returns the frame title for the running build.
func Current() string {
	return Title(Version)
}
