package demo_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/chainlib/foundation/chain"
	cllog "github.com/msto63/chainlib/foundation/core/log"
	"github.com/msto63/chainlib/internal/demo"
)

func newEngine(t *testing.T) *chain.Engine[*demo.Session] {
	t.Helper()
	e, err := chain.New[*demo.Session](chain.Options{Logger: cllog.Discard()})
	require.NoError(t, err)
	require.NoError(t, demo.Register(e))
	return e
}

func run(t *testing.T, e *chain.Engine[*demo.Session], s *demo.Session, input string) any {
	t.Helper()
	result, err := e.Execute(s, input)
	require.NoError(t, err, input)
	return result
}

func notFound(t *testing.T, e *chain.Engine[*demo.Session], s *demo.Session, input string) *chain.NotFoundError {
	t.Helper()
	_, err := e.Execute(s, input)
	var nf *chain.NotFoundError
	require.True(t, errors.As(err, &nf), "expected NotFoundError for %q, got %v", input, err)
	return nf
}

func texts(completions []chain.Completion) []string {
	out := make([]string, len(completions))
	for i, c := range completions {
		out[i] = c.Text
	}
	return out
}

func TestVariables(t *testing.T) {
	e := newEngine(t)
	s := demo.NewSession()

	assert.Equal(t, "x = hello world", run(t, e, s, "set x hello world"))
	assert.Equal(t, "hello world", run(t, e, s, "get x"))
	assert.Equal(t, "y = 2", run(t, e, s, "do set y 2"))
	assert.Equal(t, "x = hello world\ny = 2", run(t, e, s, "vars"))
	assert.Equal(t, "unset y", run(t, e, s, "unset y"))

	nf := notFound(t, e, s, "get y")
	require.NotEmpty(t, nf.Closest)
	assert.Contains(t, nf.Closest[0].Failure.Message(), "undefined variable 'y'")
}

func TestArithmetic(t *testing.T) {
	e := newEngine(t)
	s := demo.NewSession()

	assert.Equal(t, 6, run(t, e, s, "sum 1 2 3"))
	assert.Equal(t, "1.5", run(t, e, s, "avg 1 2"))
	assert.Equal(t, 3, run(t, e, s, "div 7 2"))

	nf := notFound(t, e, s, "div 1 0")
	require.Len(t, nf.Closest, 1)
	assert.Equal(t, chain.ReasonHandled, nf.Closest[0].Failure.Reason)
	assert.Contains(t, nf.Closest[0].Failure.Message(), "non-zero")
}

func TestEchoAndRepeat(t *testing.T) {
	e := newEngine(t)
	s := demo.NewSession()
	s.Set("name", "world")

	assert.Equal(t, "", run(t, e, s, "echo"))
	assert.Equal(t, "hello world", run(t, e, s, "echo hello $name"))
	assert.Equal(t, "a b\na b", run(t, e, s, `repeat 2 echo a b`))
	assert.Equal(t, "quoted text", run(t, e, s, `echo "quoted text"`))

	nf := notFound(t, e, s, "repeat 9 echo a")
	require.NotEmpty(t, nf.Closest)
	assert.Contains(t, nf.Closest[0].Failure.Message(), "too big")
}

func TestTagsAndMode(t *testing.T) {
	e := newEngine(t)
	s := demo.NewSession()

	assert.Equal(t, "(no tags)", run(t, e, s, "tags"))
	assert.Equal(t, "red,blue", run(t, e, s, "tags RED,blue"))
	assert.Equal(t, []string{"red", "blue"}, s.Tags())

	assert.Equal(t, "normal", run(t, e, s, "mode"))
	assert.Equal(t, "mode quiet", run(t, e, s, "mode quiet"))
	assert.Equal(t, "quiet", s.Mode())
}

func TestAdminGuard(t *testing.T) {
	e := newEngine(t)
	s := demo.NewSession()
	s.Set("x", "1")

	nf := notFound(t, e, s, "admin reset")
	require.NotEmpty(t, nf.Closest)
	assert.Equal(t, chain.ReasonGuardFailed, nf.Closest[0].Failure.Reason)
	assert.Empty(t, e.Complete(s, "adm"))

	assert.Equal(t, "admin commands unlocked", run(t, e, s, "elevate yes"))
	assert.Equal(t, []string{"admin"}, texts(e.Complete(s, "adm")))
	assert.Equal(t, "vars=1 tags=0 mode=normal", run(t, e, s, "admin dump"))
	assert.Equal(t, "session reset", run(t, e, s, "admin reset"))
	assert.Empty(t, s.Names())
}

func TestCompletion(t *testing.T) {
	e := newEngine(t)
	s := demo.NewSession()
	s.Set("alpha", "1")
	s.Set("beta", "2")

	assert.Equal(t, []chain.Completion{{Offset: 4, Text: "alpha"}, {Offset: 4, Text: "beta"}}, e.Complete(s, "get "))
	assert.Equal(t, []string{"$alpha", "$beta"}, texts(e.Complete(s, "echo ")))
	assert.Equal(t, []chain.Completion{{Offset: 9, Text: "echo"}}, e.Complete(s, "repeat 2 "))
	assert.Equal(t, []string{"blue", "green", "red", "yellow"}, texts(e.Complete(s, "tags red,")))
	assert.Equal(t, []string{"mode"}, texts(e.Complete(s, "mo")))
	assert.Equal(t, []string{"false", "true"}, texts(e.Complete(s, "elevate ")))
	assert.Equal(t, []string{"set"}, texts(e.Complete(s, "do ")))

	// completion without a session still works
	assert.Empty(t, e.Complete(nil, "get "))
}

func TestUnknownCommandSuggestions(t *testing.T) {
	e := newEngine(t)
	nf := notFound(t, e, demo.NewSession(), "sett x 1")
	assert.Equal(t, "sett", nf.Word)
	assert.Contains(t, nf.Suggestions, "set")
	assert.Empty(t, nf.Closest)
}

func TestHelp(t *testing.T) {
	e := newEngine(t)
	out, ok := run(t, e, demo.NewSession(), "help").(string)
	require.True(t, ok)
	assert.Contains(t, out, "set <name> <value>  - store a variable")
	assert.Contains(t, out, "do (set)->  - alias for set")
	assert.Contains(t, out, "admin reset  - administrative commands")
}

func TestSessionNilSafe(t *testing.T) {
	var s *demo.Session
	assert.NotPanics(t, func() {
		s.Set("a", "b")
		s.SetTags([]string{"red"})
		s.SetMode("quiet")
		s.SetAdmin(true)
		s.Reset()
	})
	assert.False(t, s.IsAdmin())
	assert.Equal(t, "normal", s.Mode())
	assert.Nil(t, s.Names())
}
