package locales

import "embed"

// FS holds the <lang>.json string bundles.
//
//go:embed *.json
var FS embed.FS
