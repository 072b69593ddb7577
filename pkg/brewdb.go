// Package brewdb holds application-wide metadata for BrewDB.
package brewdb

var (
	// Version of the application.
	Version = "v0.1.0"
	// Build timestamp, set by the linker.
	Build = "n/a"
)
