// ============================================================================
// chainlib - Command Grammar Engine
// ============================================================================
//
// Package:     version
// Description: Central version management for the library and its host
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for chainlib components
const (
	// Library version of foundation/chain
	Library = "0.1.0"

	// Chainsh version of the demo host
	Chainsh = "0.1.0"
)

// Build metadata, set via -ldflags "-X github.com/msto63/chainlib/pkg/core/version.Commit=..."
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "chainsh":
		return Chainsh
	default:
		return Library
	}
}

// String returns a one line description of a component build
func String(name string) string {
	return fmt.Sprintf("%s %s (library %s, commit %s, built %s, %s)",
		name, ComponentVersion(name), Library, Commit, BuildDate, runtime.Version())
}
