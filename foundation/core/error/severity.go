// File: severity.go
// Title: Error Severity Levels
// Description: Severity classification for structured errors. The logger
//              uses it to pick a log level for LogError.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.2.0: Trimmed to the levels used by chainlib

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow is user caused and expected, e.g. a mistyped command
	SeverityLow Severity = iota

	// SeverityMedium affects a single operation
	SeverityMedium

	// SeverityHigh indicates a programming error such as a malformed grammar
	SeverityHigh

	// SeverityCritical makes the process unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}
