// Package web holds the embedded browser UI.
package web

import "embed"

//go:embed static
var Static embed.FS
