// Package types provides leaf value types for chain grammar nodes.
//
// Package: types
// Title: Grammar Value Types
// Description: Integer and float types with optional bounds, word, string
//              and greedy text, enumerations, booleans and closure based
//              dynamic types. Numeric types weigh 50, text types 10 and
//              the rest 0.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
//
// Usage:
//
//	chain.Literal("volume").Then(
//		chain.Typed("level", types.IntegerRange(0, 100)).Executes(setVolume),
//	)
//	chain.Literal("mode").Then(
//		chain.Typed("mode", types.Enum("fast", "safe")).Executes(setMode),
//	)
package types
