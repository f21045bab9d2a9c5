// Package plugins embeds the rule sets shipped with ali.
package plugins

import "embed"

// FS holds every built-in plugin as "<name>/plugin.yaml".
//
//go:embed */plugin.yaml
var FS embed.FS
