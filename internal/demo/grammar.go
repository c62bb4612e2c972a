package demo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/msto63/chainlib/foundation/chain"
	"github.com/msto63/chainlib/foundation/chain/types"
)

// ErrUndefined is returned when a variable does not exist
var ErrUndefined = errors.New("undefined variable")

func session(s *chain.State) *Session {
	return chain.ExecutorOf[*Session](s)
}

// variable parses an existing variable name. Existence is only enforced
// during execution so completion can still walk past unknown names.
func variable() *types.DynamicType {
	return types.Dynamic(
		func(s *chain.State, sc *chain.Scanner) (any, error) {
			name := sc.ReadWord()
			if name == "" {
				return nil, chain.Expected("variable")
			}
			if s.IsExecution() {
				if _, ok := session(s).Get(name); !ok {
					return nil, chain.Rejectf("undefined variable '%s'", name)
				}
			}
			return name, nil
		},
		func(s *chain.State, _ *chain.Scanner) []string {
			return session(s).Names()
		},
	).WithWeight(types.TextWeight)
}

// Register adds the demo grammar to e
func Register(e *chain.Engine[*Session]) error {
	for _, root := range Grammar(e.Chains) {
		if err := e.Register(root); err != nil {
			return fmt.Errorf("register %q: %w", root.Name(), err)
		}
	}
	return nil
}

// Grammar builds the demo command roots. chains lists the registered
// chains for the help command.
func Grammar(chains func() []*chain.Chain) []*chain.Node {
	set := chain.Literal("set").Describe("store a variable").Then(
		chain.Typed("name", types.Word()).
			Suggest(func(s *chain.State, _ *chain.Scanner) []string { return session(s).Names() }).
			Then(chain.Typed("value", types.Greedy()).Executes(setVariable)),
	)

	echo := chain.Literal("echo").Describe("print arguments, expanding $variables").
		Executes(echoArgs).
		Then(chain.RawArgs("args", completeVariables).Executes(echoArgs))

	return []*chain.Node{
		set,
		chain.Literal("get").Describe("print a variable").Then(
			chain.Typed("name", variable()).Executes(getVariable),
		),
		chain.Literal("unset").Describe("remove a variable").Then(
			chain.Typed("name", variable()).Executes(unsetVariable),
		),
		chain.Literal("vars").Describe("list all variables").Executes(listVariables),
		chain.Literal("sum").Describe("add integers").Then(
			chain.List("values", types.Integer()).Executes(sum),
		),
		chain.Literal("avg").Describe("average of numbers").Then(
			chain.List("values", types.Float()).Executes(average),
		),
		chain.Literal("div").Describe("integer division").Then(
			chain.Typed("a", types.Integer()).Then(
				chain.Typed("b", types.Integer()).
					Validate(func(v any) bool { return v.(int) != 0 }).
					OnError(func(_ *chain.State, err error) error {
						return fmt.Errorf("divisor must be a non-zero integer: %w", err)
					}).
					Executes(divide),
			),
		),
		echo,
		chain.Literal("repeat").Describe("run echo several times").Then(
			chain.Typed("times", types.IntegerRange(1, 5)).Then(chain.Redirect("echo", echo)),
		),
		chain.Literal("tags").Describe("show or replace tags").
			Executes(showTags).
			Then(chain.Array("tags", types.Enum(Colors...)).Executes(setTags)),
		chain.Literal("mode").Describe("show or change the output mode").
			Executes(showMode).
			Then(chain.Typed("mode", types.Enum(Modes...)).Executes(setMode)),
		chain.Literal("elevate").Describe("unlock admin commands").Then(
			chain.Typed("on", types.Boolean()).Executes(elevate),
		),
		chain.Literal("admin").Describe("administrative commands").
			Requires(func(s *chain.State) bool { return session(s).IsAdmin() }).
			Then(
				chain.Literal("reset").Executes(reset),
				chain.Literal("dump").Executes(dump),
			),
		chain.Literal("do").Describe("alias for set").Then(chain.Redirect("set", set)),
		chain.Literal("help").Describe("list all commands").Executes(help(chains)),
	}
}

func setVariable(s *chain.State) (any, error) {
	name, _ := chain.Arg[string](s, "name")
	value, _ := chain.Arg[string](s, "value")
	session(s).Set(name, value)
	return fmt.Sprintf("%s = %s", name, value), nil
}

func getVariable(s *chain.State) (any, error) {
	name, _ := chain.Arg[string](s, "name")
	value, ok := session(s).Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUndefined, name)
	}
	return value, nil
}

func unsetVariable(s *chain.State) (any, error) {
	name, _ := chain.Arg[string](s, "name")
	if !session(s).Unset(name) {
		return nil, fmt.Errorf("%w: %s", ErrUndefined, name)
	}
	return "unset " + name, nil
}

func listVariables(s *chain.State) (any, error) {
	sess := session(s)
	names := sess.Names()
	if len(names) == 0 {
		return "(no variables)", nil
	}
	lines := make([]string, 0, len(names))
	for _, name := range names {
		value, _ := sess.Get(name)
		lines = append(lines, fmt.Sprintf("%s = %s", name, value))
	}
	return strings.Join(lines, "\n"), nil
}

func sum(s *chain.State) (any, error) {
	values, _ := chain.ListArg[int](s, "values")
	total := 0
	for _, v := range values {
		total += v
	}
	return total, nil
}

func average(s *chain.State) (any, error) {
	values, _ := chain.ListArg[float64](s, "values")
	if len(values) == 0 {
		return nil, errors.New("no values")
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return strconv.FormatFloat(total/float64(len(values)), 'f', -1, 64), nil
}

func divide(s *chain.State) (any, error) {
	a, _ := chain.Arg[int](s, "a")
	b, _ := chain.Arg[int](s, "b")
	return a / b, nil
}

func completeVariables(s *chain.State, _ []string) []string {
	names := session(s).Names()
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = "$" + name
	}
	return out
}

// echoArgs joins the arguments; a "times" argument from repeat repeats
// the line
func echoArgs(s *chain.State) (any, error) {
	raw, _ := chain.Arg[[]string](s, "args")
	args := make([]string, len(raw))
	sess := session(s)
	for i, arg := range raw {
		args[i] = arg
		if strings.HasPrefix(arg, "$") {
			if value, ok := sess.Get(arg[1:]); ok {
				args[i] = value
			}
		}
	}

	line := strings.Join(args, " ")
	times, ok := chain.Arg[int](s, "times")
	if !ok {
		return line, nil
	}
	lines := make([]string, times)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n"), nil
}

func showTags(s *chain.State) (any, error) {
	tags := session(s).Tags()
	if len(tags) == 0 {
		return "(no tags)", nil
	}
	return strings.Join(tags, ","), nil
}

func setTags(s *chain.State) (any, error) {
	tags, _ := chain.ListArg[string](s, "tags")
	session(s).SetTags(tags)
	return strings.Join(tags, ","), nil
}

func showMode(s *chain.State) (any, error) {
	return session(s).Mode(), nil
}

func setMode(s *chain.State) (any, error) {
	mode, _ := chain.Arg[string](s, "mode")
	session(s).SetMode(mode)
	return "mode " + mode, nil
}

func elevate(s *chain.State) (any, error) {
	on, _ := chain.Arg[bool](s, "on")
	session(s).SetAdmin(on)
	if on {
		return "admin commands unlocked", nil
	}
	return "admin commands locked", nil
}

func reset(s *chain.State) (any, error) {
	session(s).Reset()
	return "session reset", nil
}

func dump(s *chain.State) (any, error) {
	sess := session(s)
	return fmt.Sprintf("vars=%d tags=%d mode=%s", len(sess.Names()), len(sess.Tags()), sess.Mode()), nil
}

func help(chains func() []*chain.Chain) chain.Action {
	return func(*chain.State) (any, error) {
		var b strings.Builder
		for i, c := range chains() {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(c.String())
			if d := c.Node(0).Description(); d != "" {
				fmt.Fprintf(&b, "  - %s", d)
			}
		}
		return b.String(), nil
	}
}
