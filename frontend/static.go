// Package static provides the embedded settings editor assets
package static

import "embed"

// FS contains the editor build files
// Using 'all:' prefix to include files starting with '_' or '.'
//
//go:embed all:build/*
var FS embed.FS
