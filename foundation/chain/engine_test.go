// File: engine_test.go
// Title: Engine Tests
// Description: Dispatch, disambiguation, not-found ranking, redirects,
//              completion and registry behavior of the engine.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package chain_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/chainlib/foundation/chain"
	"github.com/msto63/chainlib/foundation/chain/types"
	clerror "github.com/msto63/chainlib/foundation/core/error"
	cllog "github.com/msto63/chainlib/foundation/core/log"
	clstringx "github.com/msto63/chainlib/foundation/utils/stringx"
)

type user struct {
	name  string
	admin bool
}

func newEngine(t *testing.T, opts chain.Options, roots ...*chain.Node) *chain.Engine[*user] {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = cllog.Discard()
	}
	e, err := chain.New[*user](opts)
	require.NoError(t, err)
	for _, r := range roots {
		require.NoError(t, e.Register(r))
	}
	return e
}

func returns(v string) chain.Action {
	return func(*chain.State) (any, error) { return v, nil }
}

func texts(completions []chain.Completion) []string {
	out := make([]string, len(completions))
	for i, c := range completions {
		out[i] = c.Text
	}
	return out
}

func lulTree() *chain.Node {
	return chain.Literal("test").Then(
		chain.Literal("lul").Executes(returns("lul")),
		chain.Literal("lul2").Executes(returns("lul2")),
		chain.Literal("lul3").Then(chain.Literal("lul4").Executes(returns("lul4"))),
	)
}

func TestExecute_SelectsMatchingChain(t *testing.T) {
	e := newEngine(t, chain.Options{}, lulTree())

	res, err := e.Execute(nil, "test lul3 lul4")
	require.NoError(t, err)
	assert.Equal(t, "lul4", res)

	res, err = e.Execute(nil, "test lul")
	require.NoError(t, err)
	assert.Equal(t, "lul", res)

	res, err = e.Execute(nil, "TEST LUL2")
	require.NoError(t, err)
	assert.Equal(t, "lul2", res)
}

func TestExecute_IncompleteInputIsNotFound(t *testing.T) {
	e := newEngine(t, chain.Options{}, lulTree())

	_, err := e.Execute(nil, "test")
	var nf *chain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "test", nf.Word)
	assert.True(t, errors.Is(err, chain.ErrNotFound))
	assert.True(t, clerror.HasCode(err, clerror.CodeCommandNotFound))

	require.Len(t, nf.Closest, 3)
	for _, c := range nf.Closest {
		assert.Equal(t, chain.ReasonMissingSeparator, c.Failure.Reason)
	}
	assert.Equal(t, "test lul3 lul4", nf.Closest[0].Chain.String())
}

func TestExecute_EmptyInput(t *testing.T) {
	e := newEngine(t, chain.Options{}, lulTree())

	_, err := e.Execute(nil, "")
	var nf *chain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "", nf.Word)
	assert.Empty(t, nf.Closest)
}

func TestExecute_LiteralBeatsInteger(t *testing.T) {
	root := chain.Literal("test").Then(
		chain.Literal("5").Executes(returns("literal")),
		chain.Typed("n", types.Integer()).Executes(func(s *chain.State) (any, error) {
			n, _ := chain.Arg[int](s, "n")
			return fmt.Sprintf("int %d", n), nil
		}),
	)
	e := newEngine(t, chain.Options{}, root)

	res, err := e.Execute(nil, "test 5")
	require.NoError(t, err)
	assert.Equal(t, "literal", res)

	res, err = e.Execute(nil, "test 6")
	require.NoError(t, err)
	assert.Equal(t, "int 6", res)
}

func TestExecute_LongerChainWins(t *testing.T) {
	root := chain.Literal("say").Then(
		chain.Typed("text", types.Greedy()).Executes(returns("greedy")),
		chain.Typed("first", types.Word()).Then(
			chain.Typed("second", types.Word()).Executes(returns("two words")),
		),
	)
	e := newEngine(t, chain.Options{}, root)

	res, err := e.Execute(nil, "say hello world")
	require.NoError(t, err)
	assert.Equal(t, "two words", res)

	res, err = e.Execute(nil, "say hello")
	require.NoError(t, err)
	assert.Equal(t, "greedy", res)
}

func TestExecute_ClosestSkipsRootWithUnrelatedTail(t *testing.T) {
	e := newEngine(t, chain.Options{},
		chain.Literal("test").Executes(nop()),
		chain.Literal("testa").Executes(nop()),
		chain.Literal("testb").Executes(nop()),
	)

	_, err := e.Execute(nil, "test c")
	var nf *chain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "test", nf.Word)
	require.Equal(t, []string{"testa", "testb"}, chainStrings(nf.Closest))
	a, b := nf.Closest[0].Failure, nf.Closest[1].Failure
	assert.Equal(t, 0, a.Index)
	assert.Equal(t, a.Index, b.Index)
	assert.Equal(t, a.Severity(), b.Severity())

	_, err = e.Execute(nil, "tes")
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, []string{"test", "testa", "testb"}, chainStrings(nf.Closest))

	// a tail that is itself a prefix of the root keeps the root
	_, err = e.Execute(nil, "test t")
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, []string{"test"}, chainStrings(nf.Closest))
	assert.Equal(t, chain.ReasonExtraInput, nf.Closest[0].Failure.Reason)
}

func chainStrings(outcomes []chain.MatchOutcome) []string {
	out := make([]string, len(outcomes))
	for i, o := range outcomes {
		out[i] = o.Chain.String()
	}
	return out
}

func TestExecute_UnrelatedRootsAreFiltered(t *testing.T) {
	e := newEngine(t, chain.Options{}, lulTree(), chain.Literal("other").Executes(nop()))

	_, err := e.Execute(nil, "xyz")
	var nf *chain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "xyz", nf.Word)
	assert.Empty(t, nf.Closest)
	assert.Empty(t, nf.Suggestions)

	_, err = e.Execute(nil, "tset")
	require.True(t, errors.As(err, &nf))
	assert.Empty(t, nf.Closest)
	assert.Equal(t, []string{"test"}, nf.Suggestions)
}

func TestExecute_Arguments(t *testing.T) {
	var got map[string]any
	root := chain.Literal("set").Then(
		chain.Typed("name", types.Word()).Then(
			chain.Typed("value", types.Greedy()).Executes(func(s *chain.State) (any, error) {
				got = s.Args()
				return nil, nil
			}),
		),
	)
	e := newEngine(t, chain.Options{}, root)

	_, err := e.Execute(nil, "set greeting hello world")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "greeting", "value": "hello world"}, got)
}

func TestExecute_ActionErrors(t *testing.T) {
	boom := errors.New("boom")
	e := newEngine(t, chain.Options{},
		chain.Literal("fail").Executes(func(*chain.State) (any, error) { return nil, boom }),
		chain.Literal("panic").Executes(chain.Run(func() { panic("oops") })),
	)

	_, err := e.Execute(nil, "fail")
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, `command "fail" failed: boom`)

	_, err = e.Execute(nil, "panic")
	require.Error(t, err)
	assert.True(t, clerror.HasCode(err, clerror.CodeInternal))
}

func TestExecute_Guards(t *testing.T) {
	isAdmin := func(s *chain.State) bool {
		u := chain.ExecutorOf[*user](s)
		return u != nil && u.admin
	}
	e := newEngine(t, chain.Options{},
		chain.Literal("admin").Requires(isAdmin).Then(chain.Literal("reset").Executes(returns("reset"))),
	)

	res, err := e.Execute(&user{admin: true}, "admin reset")
	require.NoError(t, err)
	assert.Equal(t, "reset", res)

	_, err = e.Execute(&user{}, "admin reset")
	var nf *chain.NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Len(t, nf.Closest, 1)
	assert.Equal(t, chain.ReasonGuardFailed, nf.Closest[0].Failure.Reason)

	assert.Empty(t, e.Complete(&user{}, "adm"))
	assert.Equal(t, []string{"admin"}, texts(e.Complete(&user{admin: true}, "adm")))
}

func TestExecute_PanickingGuard(t *testing.T) {
	e := newEngine(t, chain.Options{},
		chain.Literal("admin").
			Requires(func(*chain.State) bool { panic("no session") }).
			Then(chain.Literal("reset").Executes(returns("reset"))),
		chain.Literal("ping").Executes(returns("pong")),
		chain.Literal("sudo").Then(
			chain.Literal("now").
				Requires(func(*chain.State) bool { panic("no session") }).
				Executes(returns("now")),
		),
	)

	var res any
	var err error
	require.NotPanics(t, func() { res, err = e.Execute(nil, "ping") })
	require.NoError(t, err)
	assert.Equal(t, "pong", res)

	require.NotPanics(t, func() { _, err = e.Execute(nil, "admin reset") })
	var nf *chain.NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Len(t, nf.Closest, 1)
	f := nf.Closest[0].Failure
	assert.Equal(t, chain.ReasonInternalError, f.Reason)
	assert.Equal(t, 0, f.Index)
	assert.Equal(t, "admin", f.Argument)
	assert.Contains(t, f.Cause.Error(), "no session")

	require.NotPanics(t, func() { _, err = e.Execute(nil, "sudo ") })
	require.True(t, errors.As(err, &nf))
	require.Len(t, nf.Closest, 1)
	assert.Equal(t, chain.ReasonInternalError, nf.Closest[0].Failure.Reason)
	assert.Equal(t, 1, nf.Closest[0].Failure.Index)

	assert.NotPanics(t, func() { e.Complete(nil, "p") })
	assert.Equal(t, []string{"ping"}, texts(e.Complete(nil, "p")))
}

func TestExecute_HandledError(t *testing.T) {
	root := chain.Literal("num").Then(
		chain.Typed("n", types.Integer()).
			OnError(func(*chain.State, error) error { return errors.New("numbers only") }).
			Executes(nop()),
	)
	e := newEngine(t, chain.Options{}, root)

	_, err := e.Execute(nil, "num x")
	var nf *chain.NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Len(t, nf.Closest, 1)
	f := nf.Closest[0].Failure
	assert.Equal(t, chain.ReasonHandled, f.Reason)
	assert.Equal(t, "numbers only", f.Message())
}

func redirectEngine(t *testing.T) (*chain.Engine[*user], *map[string]any) {
	t.Helper()
	stored := map[string]any{}
	set := chain.Literal("set").Then(
		chain.Typed("name", types.Word()).Then(
			chain.Typed("value", types.Greedy()).Executes(func(s *chain.State) (any, error) {
				name, _ := chain.Arg[string](s, "name")
				value, _ := chain.Arg[string](s, "value")
				stored[name] = value
				return "stored", nil
			}),
		),
	)
	do := chain.Literal("do").Then(chain.Redirect("set", set))
	return newEngine(t, chain.Options{}, set, do), &stored
}

func TestExecute_Redirect(t *testing.T) {
	e, stored := redirectEngine(t)

	res, err := e.Execute(nil, "do set x 1")
	require.NoError(t, err)
	assert.Equal(t, "stored", res)
	assert.Equal(t, map[string]any{"x": "1"}, *stored)

	_, err = e.Execute(nil, "do set x")
	var nf *chain.NotFoundError
	require.True(t, errors.As(err, &nf))
	require.NotEmpty(t, nf.Closest)
	assert.Equal(t, "do set <name> <value>", nf.Closest[0].Chain.String())
	assert.Equal(t, 3, nf.Closest[0].Failure.Index)
}

func TestExecute_RecursiveRedirectIsBounded(t *testing.T) {
	loop := chain.Literal("loop")
	loop.Then(chain.Literal("end").Executes(returns("end")), chain.Redirect("again", loop))
	e := newEngine(t, chain.Options{MaxRedirectDepth: 3}, loop)

	res, err := e.Execute(nil, "loop loop loop end")
	require.NoError(t, err)
	assert.Equal(t, "end", res)

	_, err = e.Execute(nil, "loop loop loop loop loop end")
	assert.Error(t, err)
}

func TestComplete_EmptyInputListsRoots(t *testing.T) {
	e := newEngine(t, chain.Options{}, lulTree(), chain.Literal("alpha").Executes(nop()))

	got := e.Complete(nil, "")
	assert.ElementsMatch(t, []chain.Completion{{Offset: 0, Text: "test"}, {Offset: 0, Text: "alpha"}}, got)
}

func TestComplete_Literals(t *testing.T) {
	e := newEngine(t, chain.Options{}, lulTree())

	assert.Equal(t, []chain.Completion{{Offset: 0, Text: "test"}}, e.Complete(nil, "te"))
	assert.Equal(t, []string{"lul", "lul2", "lul3"}, texts(e.Complete(nil, "test ")))
	assert.Equal(t, []string{"lul", "lul2", "lul3"}, texts(e.Complete(nil, "test lu")))
	assert.Equal(t, []chain.Completion{{Offset: 10, Text: "lul4"}}, e.Complete(nil, "test lul3 "))
	assert.Empty(t, e.Complete(nil, "test x"))
}

func TestComplete_MatchModes(t *testing.T) {
	roots := []*chain.Node{
		chain.Literal("remove").Executes(nop()),
		chain.Literal("move").Executes(nop()),
		chain.Literal("mount").Executes(nop()),
	}

	prefix := newEngine(t, chain.Options{MatchMode: chain.MatchPrefix}, roots...)
	assert.Equal(t, []string{"mount", "move"}, texts(prefix.Complete(nil, "mo")))

	substring := newEngine(t, chain.Options{MatchMode: chain.MatchSubstring}, roots...)
	assert.Equal(t, []string{"move", "remove"}, texts(substring.Complete(nil, "ov")))

	fuzzy := newEngine(t, chain.Options{MatchMode: chain.MatchFuzzy}, roots...)
	assert.Equal(t, []string{"mount", "move", "remove"}, texts(fuzzy.Complete(nil, "mo")))
	assert.Equal(t, []string{"remove"}, texts(fuzzy.Complete(nil, "rmv")))
}

func TestComplete_QuotesWhitespace(t *testing.T) {
	root := chain.Literal("greet").Then(
		chain.Typed("name", types.String()).
			Suggest(func(*chain.State, *chain.Scanner) []string {
				return []string{`say "hi"`, "hello world", "bob"}
			}).
			Executes(nop()),
	)
	e := newEngine(t, chain.Options{}, root)

	got := e.Complete(nil, "greet ")
	require.Len(t, got, 3)
	assert.Equal(t, []string{"bob", `"hello world"`, `"say \"hi\""`}, texts(got))
	for _, c := range got {
		assert.Equal(t, 6, c.Offset)
	}

	for i, want := range []string{"bob", "hello world", `say "hi"`} {
		back, err := clstringx.Unquote(got[i].Text)
		require.NoError(t, err)
		assert.Equal(t, want, back)
	}
}

func TestComplete_NumericOrder(t *testing.T) {
	root := chain.Literal("vol").Then(chain.Typed("level", types.IntegerRange(0, 10)).Executes(nop()))
	e := newEngine(t, chain.Options{}, root)

	assert.Equal(t,
		[]string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10"},
		texts(e.Complete(nil, "vol ")))
	assert.Equal(t, []string{"1", "10"}, texts(e.Complete(nil, "vol 1")))
}

func TestComplete_List(t *testing.T) {
	root := chain.Literal("sum").Then(chain.List("values", types.IntegerRange(1, 3)).Executes(nop()))
	e := newEngine(t, chain.Options{}, root)

	assert.Equal(t,
		[]chain.Completion{{Offset: 8, Text: "1"}, {Offset: 8, Text: "2"}, {Offset: 8, Text: "3"}},
		e.Complete(nil, "sum 1 2 "))
	assert.Equal(t, []chain.Completion{{Offset: 6, Text: "2"}}, e.Complete(nil, "sum 1 2"))
}

func TestComplete_Array(t *testing.T) {
	root := chain.Literal("tags").Then(chain.Array("tags", types.Enum("red", "green", "blue")).Executes(nop()))
	e := newEngine(t, chain.Options{}, root)

	assert.Equal(t, []chain.Completion{{Offset: 9, Text: "green"}}, e.Complete(nil, "tags red,g"))
	assert.Equal(t, []string{"blue", "green", "red"}, texts(e.Complete(nil, "tags red,")))
}

func TestComplete_RawArgs(t *testing.T) {
	var seen [][]string
	root := chain.Literal("echo").Then(
		chain.RawArgs("args", func(_ *chain.State, args []string) []string {
			seen = append(seen, args)
			if len(args) == 0 {
				return []string{"alpha", "beta"}
			}
			return []string{"gamma"}
		}).Executes(nop()),
	)
	e := newEngine(t, chain.Options{}, root)

	assert.Equal(t, []chain.Completion{{Offset: 5, Text: "alpha"}, {Offset: 5, Text: "beta"}}, e.Complete(nil, "echo "))
	assert.Equal(t, []chain.Completion{{Offset: 7, Text: "gamma"}}, e.Complete(nil, "echo a "))
	assert.Equal(t, []chain.Completion{{Offset: 7, Text: "gamma"}}, e.Complete(nil, "echo a g"))
	assert.Contains(t, seen, []string{"a"})
}

func TestComplete_PanickingProviders(t *testing.T) {
	e := newEngine(t, chain.Options{},
		chain.Literal("greet").Then(
			chain.Typed("name", types.Word()).
				Suggest(func(*chain.State, *chain.Scanner) []string { panic("lookup failed") }).
				Executes(nop()),
		),
		chain.Literal("run").Then(
			chain.RawArgs("args", func(*chain.State, []string) []string { panic("lookup failed") }).
				Executes(nop()),
		),
	)

	for _, input := range []string{"greet ", "greet b", "run ", "run a b", "run a "} {
		assert.NotPanics(t, func() {
			assert.Empty(t, e.Complete(nil, input), input)
		}, input)
	}
	assert.Equal(t, []string{"greet"}, texts(e.Complete(nil, "gr")))
}

func TestComplete_Redirect(t *testing.T) {
	e, _ := redirectEngine(t)

	assert.Equal(t, []chain.Completion{{Offset: 3, Text: "set"}}, e.Complete(nil, "do "))
	assert.Equal(t, []chain.Completion{{Offset: 3, Text: "set"}}, e.Complete(nil, "do s"))
}

func TestComplete_DoesNotRunHooksOrActions(t *testing.T) {
	calls := 0
	root := chain.Literal("num").Then(
		chain.Typed("n", types.Integer()).
			OnError(func(*chain.State, error) error { calls++; return nil }).
			Executes(chain.Run(func() { calls++ })),
	)
	e := newEngine(t, chain.Options{}, root)

	e.Complete(nil, "num x")
	e.Complete(nil, "num 1")
	assert.Equal(t, 0, calls)
}

func TestEngine_Registry(t *testing.T) {
	e := newEngine(t, chain.Options{}, chain.Literal("Test").Executes(returns("old")))
	require.NoError(t, e.Register(chain.Literal("test").Executes(returns("new"))))
	require.NoError(t, e.Register(chain.Literal("other").Executes(nop())))

	assert.Equal(t, []string{"test", "other"}, e.Roots())
	assert.Len(t, e.Chains(), 2)

	res, err := e.Execute(nil, "test")
	require.NoError(t, err)
	assert.Equal(t, "new", res)

	assert.True(t, e.Unregister("OTHER"))
	assert.False(t, e.Unregister("other"))
	assert.Equal(t, []string{"test"}, e.Roots())

	err = e.Register(chain.Typed("n", types.Integer()).Executes(nop()))
	assert.True(t, clerror.HasCode(err, clerror.CodeInvalidNode))

	err = e.Register(chain.Literal("broken").Then(chain.Literal("dead")))
	assert.True(t, clerror.HasCode(err, clerror.CodeUnterminatedChain))
	assert.Equal(t, []string{"test"}, e.Roots())
}

func TestEngine_RegisterCompilesRedirectTargets(t *testing.T) {
	broken := chain.Literal("broken").Then(chain.Literal("dead"))
	e := newEngine(t, chain.Options{})

	err := e.Register(chain.Literal("go").Then(chain.Redirect("to", broken)))
	assert.True(t, clerror.HasCode(err, clerror.CodeUnterminatedChain))
	assert.Empty(t, e.Roots())
}

func TestEngine_CaseSensitive(t *testing.T) {
	e := newEngine(t, chain.Options{Comparator: chain.CaseSensitive}, lulTree())

	_, err := e.Execute(nil, "TEST lul")
	assert.Error(t, err)
	_, err = e.Execute(nil, "test lul")
	assert.NoError(t, err)

	assert.True(t, e.Comparator().CaseSensitive())
	assert.False(t, newEngine(t, chain.Options{}).Comparator().CaseSensitive())
}

func TestEngine_Limits(t *testing.T) {
	e := newEngine(t, chain.Options{MaxInputLength: 8}, lulTree())

	_, err := e.Execute(nil, "test lul3 lul4")
	assert.True(t, clerror.HasCode(err, clerror.CodeInputTooLong))
	assert.Nil(t, e.Complete(nil, "test lul3 "))

	_, err = chain.New[*user](chain.Options{MaxInputLength: -1})
	assert.True(t, clerror.HasCode(err, clerror.CodeInvalidConfig))
}

func TestEngine_ConcurrentUse(t *testing.T) {
	e := newEngine(t, chain.Options{}, lulTree())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				res, err := e.Execute(nil, "test lul")
				assert.NoError(t, err)
				assert.Equal(t, "lul", res)
				e.Complete(nil, "test l")
			}
		}()
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				name := fmt.Sprintf("root%d", i)
				assert.NoError(t, e.Register(chain.Literal(name).Executes(nop())))
				e.Unregister(name)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, []string{"test"}, e.Roots())
}
