package wayfinder

import _ "embed"

// Version is the library version, embedded from the VERSION file.
//
//go:embed VERSION
var Version string
