// Package log provides structured logging for chainlib.
//
// Package: log
// Title: Structured Logging
// Description: Leveled, structured logger with contextual fields, an
//              invocation (request) ID and JSON, text and console output.
//              Loggers are immutable: every With* call returns a clone.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.2.0: Reduced to the features used by the engine and hosts
//
// Usage:
//
//	import cllog "github.com/msto63/chainlib/foundation/core/log"
//
//	logger := cllog.NewWithConfig(cllog.Config{
//		Level:  cllog.LevelDebug,
//		Format: cllog.FormatText,
//		Name:   "chainsh",
//	}).WithField("component", "chain-engine")
//
//	logger.Debug("Command executed", cllog.Fields{
//		"chain": "set <name> <value>",
//	})
//	logger.LogError(err)
package log
