// Package build holds version information baked into the engine binary.
package build

// Version is overridden at link time with -ldflags "-X ...Version=...".
var Version = "v0.0.0-dev"

// Name is the engine's UCI identity.
const Name = "Mess II"

// Author is reported in the UCI id author line.
const Author = "the Mess II contributors"
