package ali

import _ "embed"

// Version is the release of the ali module, read from the VERSION file.
//
//go:embed VERSION
var Version string
