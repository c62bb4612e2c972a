// Package chain implements a command grammar engine.
//
// Package: chain
// Title: Command Grammar Engine
// Description: Grammar trees of literal, typed, list, array, raw argument
//              and redirect nodes are compiled into chains, the linear
//              root-to-action paths of the tree. Input is matched against
//              every chain; ambiguous matches are resolved by chain length
//              and node weights, and when nothing matches the failures
//              that progressed furthest are ranked for diagnostics. The
//              same matching drives tab completion.
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
//	import (
//		"github.com/msto63/chainlib/foundation/chain"
//		"github.com/msto63/chainlib/foundation/chain/types"
//	)
//
//	engine, err := chain.New[*Session](chain.Options{})
//	if err != nil {
//		return err
//	}
//
//	err = engine.Register(chain.Literal("set").Then(
//		chain.Typed("name", types.Word()).Then(
//			chain.Typed("value", types.Greedy()).Executes(func(s *chain.State) (any, error) {
//				name, _ := chain.Arg[string](s, "name")
//				value, _ := chain.Arg[string](s, "value")
//				chain.ExecutorOf[*Session](s).Set(name, value)
//				return nil, nil
//			}),
//		),
//	))
//
//	result, err := engine.Execute(session, "set greeting hello world")
//	var notFound *chain.NotFoundError
//	if errors.As(err, &notFound) {
//		for _, closest := range notFound.Closest {
//			fmt.Println(closest.Chain, closest.Failure.Message())
//		}
//	}
//
//	completions := engine.Complete(session, "se")
//
// Matching rules:
//
// Tokens are separated by exactly one space. A chain fails with
// MissingSeparator, InputExhausted, ExtraInput, GuardFailed,
// ValueRejected, InternalError or, when a node's error hook converted the
// error during execution, Handled. Failures at the first node are only
// reported during execution when the first word is a prefix of the root
// name; completion keeps all of them.
package chain
