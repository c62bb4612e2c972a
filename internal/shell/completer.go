package shell

import (
	"unicode/utf8"

	"github.com/msto63/chainlib/foundation/chain"
)

// Completer adapts engine completions to readline's AutoCompleteInterface
type Completer[E any] struct {
	engine   *chain.Engine[E]
	executor E
}

// NewCompleter creates a completer running as executor
func NewCompleter[E any](engine *chain.Engine[E], executor E) *Completer[E] {
	return &Completer[E]{engine: engine, executor: executor}
}

// Do implements readline.AutoCompleteInterface. Readline can only append
// to the word under the cursor, so only completions at the rightmost
// offset that extend the typed text are offered.
func (c *Completer[E]) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	completions := c.engine.Complete(c.executor, text)
	if len(completions) == 0 {
		return nil, 0
	}

	offset := 0
	for _, comp := range completions {
		if comp.Offset > offset {
			offset = comp.Offset
		}
	}
	typed := text[offset:]
	typedLen := utf8.RuneCountInString(typed)
	cmp := c.engine.Comparator()

	var candidates [][]rune
	for _, comp := range completions {
		if comp.Offset != offset || !cmp.HasPrefix(comp.Text, typed) {
			continue
		}
		runes := []rune(comp.Text)
		if len(runes) < typedLen {
			continue
		}
		candidates = append(candidates, runes[typedLen:])
	}
	if len(candidates) == 1 {
		candidates[0] = append(candidates[0], ' ')
	}
	return candidates, typedLen
}
