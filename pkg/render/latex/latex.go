package latex

import (
	"strings"

	"github.com/matzehuels/molfig/pkg/errors"
)

// TerseLineWidth is the maximum width of a packed line in terse mode.
const TerseLineWidth = 75

// Options controls output packaging.
type Options struct {
	// Indent is the number of spaces put in front of every code line.
	Indent int

	// SubmolName wraps the code in \definesubmol{SubmolName}{...}. It takes
	// precedence over ChemfigCommand.
	SubmolName string

	// ChemfigCommand wraps the code in \chemfig{...}.
	ChemfigCommand bool

	// Terse strips comments and whitespace and packs the code into long
	// lines joined by "%\n".
	Terse bool
}

// Format packages rendered chemfig lines into LaTeX source.
func Format(lines []string, opts Options) (string, error) {
	if opts.Indent < 0 {
		return "", errors.New(errors.ErrCodeInvalidOption, "indent must not be negative, got %d", opts.Indent)
	}
	if opts.SubmolName != "" {
		if err := errors.ValidateSubmolName(opts.SubmolName); err != nil {
			return "", err
		}
	}

	prefix := strings.Repeat(" ", opts.Indent)
	dedented := Dedent(lines)
	out := make([]string, 0, len(dedented)+2)
	for _, line := range dedented {
		out = append(out, prefix+line)
	}

	switch {
	case opts.SubmolName != "":
		out = wrap(out, `\definesubmol{`+opts.SubmolName+`}{`)
	case opts.ChemfigCommand:
		out = wrap(out, `\chemfig{`)
	}

	if opts.Terse {
		return strings.Join(Strip(out), "%\n"), nil
	}
	return strings.Join(out, "\n"), nil
}

func wrap(lines []string, open string) []string {
	out := make([]string, 0, len(lines)+2)
	out = append(out, open)
	out = append(out, lines...)
	return append(out, "}")
}

// Dedent removes the leading whitespace common to all non-blank lines.
// Blank lines do not count toward the margin and come back empty.
func Dedent(lines []string) []string {
	var margin string
	found := false
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		lead := line[:len(line)-len(trimmed)]
		if !found {
			margin, found = lead, true
			continue
		}
		margin = margin[:commonPrefix(margin, lead)]
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out[i] = line[len(margin):]
	}
	return out
}

// commonPrefix is the length of the longest common prefix of a and b.
func commonPrefix(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Strip removes comments and surrounding whitespace from every line and
// packs the results into chunks of at most [TerseLineWidth] characters.
// A single line longer than the limit forms its own chunk.
func Strip(lines []string) []string {
	var chunks []string
	var acc strings.Builder
	for _, line := range lines {
		code, _, _ := strings.Cut(line, "%")
		code = strings.TrimSpace(code)
		if acc.Len() > 0 && acc.Len()+len(code) > TerseLineWidth {
			chunks = append(chunks, acc.String())
			acc.Reset()
		}
		acc.WriteString(code)
	}
	if acc.Len() > 0 {
		chunks = append(chunks, acc.String())
	}
	return chunks
}
