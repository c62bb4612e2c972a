package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/msto63/chainlib/foundation/chain"
	clstringx "github.com/msto63/chainlib/foundation/utils/stringx"
)

// maxClosest limits the chains listed under a not-found diagnostic
const maxClosest = 5

// FormatNotFound renders the diagnostic for a command that did not match
func FormatNotFound(nf *chain.NotFoundError) string {
	var b strings.Builder
	b.WriteString(nf.Error())

	for i, o := range nf.Closest {
		if i == maxClosest {
			fmt.Fprintf(&b, "\n  ... and %d more", len(nf.Closest)-maxClosest)
			break
		}
		fmt.Fprintf(&b, "\n  %s: %s", o.Chain.String(), o.Failure.Message())
	}
	if len(nf.Suggestions) > 0 {
		fmt.Fprintf(&b, "\n  did you mean: %s", strings.Join(nf.Suggestions, ", "))
	}
	return b.String()
}

// FormatError renders any error returned by Execute
func FormatError(err error) string {
	var nf *chain.NotFoundError
	if errors.As(err, &nf) {
		return FormatNotFound(nf)
	}
	return "error: " + err.Error()
}

// FormatResult renders an action result; nil renders as nothing
func FormatResult(result any) string {
	if result == nil {
		return ""
	}
	return fmt.Sprint(result)
}

// FormatCompletions renders completions as aligned offset/text rows
func FormatCompletions(completions []chain.Completion) string {
	var b strings.Builder
	for i, c := range completions {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(clstringx.PadRight(fmt.Sprint(c.Offset), 5, ' '))
		b.WriteString(c.Text)
	}
	return b.String()
}
