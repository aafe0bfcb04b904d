package imports

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Form identifies the syntactic form of an import line.
type Form int

const (
	// FormNone marks a line that is not an import.
	FormNone Form = iota
	// FormDirect is "import a, b.c".
	FormDirect
	// FormFrom is "from a import x".
	FormFrom
)

func (f Form) String() string {
	switch f {
	case FormDirect:
		return "direct"
	case FormFrom:
		return "from"
	default:
		return "none"
	}
}

// Statement is the classification result for a single line.
type Statement struct {
	Form Form
	Refs []string // raw module references, e.g. "os.path"
}

// IsImport reports whether the line was an import statement of either form.
func (s Statement) IsImport() bool {
	return s.Form != FormNone
}

// Resolvable reports whether the statement names at least one module.
// A bare "from" line is an import that resolves to nothing.
func (s Statement) Resolvable() bool {
	return len(s.Refs) > 0
}

// Classify decides whether line is an import statement and extracts the raw
// module references it names. Only leading spaces and tabs are stripped and
// the line is split on single spaces, so the first token alone decides the form.
//
// "from X" is accepted without checking for a trailing "import Y".
func Classify(line string) Statement {
	tokens := strings.Split(strings.TrimLeft(line, " \t"), " ")

	switch tokens[0] {
	case "import":
		return Statement{Form: FormDirect, Refs: directRefs(tokens[1:])}
	case "from":
		if len(tokens) < 2 || tokens[1] == "" {
			return Statement{Form: FormFrom}
		}
		return Statement{Form: FormFrom, Refs: []string{tokens[1]}}
	default:
		return Statement{Form: FormNone}
	}
}

// directRefs turns the tokens after "import" into module references.
// "a, b" yields [a b]. It goes further than joining the remaining tokens:
// "numpy as np" yields [numpy] rather than [numpyasnp], and a trailing
// comment is ignored.
func directRefs(tokens []string) []string {
	rest := strings.Join(tokens, " ")
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		rest = rest[:i]
	}

	var refs []string
	for _, part := range strings.Split(rest, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		if i := indexOf(fields, "as"); i > 0 {
			fields = fields[:i]
		}
		refs = append(refs, strings.Join(fields, ""))
	}
	return refs
}

func indexOf(items []string, target string) int {
	for i, item := range items {
		if item == target {
			return i
		}
	}
	return -1
}

// Modules classifies line and returns the canonical names of every module it
// imports, or nil when it imports nothing.
func Modules(line string) []string {
	stmt := Classify(line)
	if !stmt.Resolvable() {
		return nil
	}
	names := make([]string, 0, len(stmt.Refs))
	for _, ref := range stmt.Refs {
		names = append(names, Normalize(ref))
	}
	return names
}

// Scan reads r line by line and returns the canonical module names imported
// in order of appearance. Duplicates are kept. Lines have no length limit.
func Scan(r io.Reader) ([]string, error) {
	var names []string

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			names = append(names, Modules(line)...)
		}
		if err == io.EOF {
			return names, nil
		}
		if err != nil {
			return nil, fmt.Errorf("scanning imports: %w", err)
		}
	}
}
