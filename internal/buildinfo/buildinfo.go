// Package buildinfo carries version metadata stamped at build time.
package buildinfo

// Version is overridden via -ldflags at release builds.
var Version = "dev"
