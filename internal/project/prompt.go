package project

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks for the metadata fields "create" needs on a line-oriented
// terminal. Fields already set on the Metadata are not asked for.
type Prompter struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewPrompter reads answers from r and writes questions to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(r), w: w}
}

// Fill asks for description, author and license. defaults supplies the
// values offered in brackets; an empty answer accepts them.
func (p *Prompter) Fill(m *Metadata, defaults Metadata) error {
	fields := []struct {
		label  string
		target *string
		def    string
	}{
		{"Project description", &m.Description, defaults.Description},
		{"Author", &m.Author, defaults.Author},
		{"License name", &m.License, defaults.License},
	}
	for _, f := range fields {
		if *f.target != "" {
			continue
		}
		answer, err := p.Ask(f.label, f.def)
		if err != nil {
			return err
		}
		*f.target = answer
	}
	return nil
}

// Ask prints label (with def in brackets when set) and returns the trimmed
// answer, or def when the answer is empty. End of input before a newline
// counts as an answer.
func (p *Prompter) Ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.w, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.w, "%s: ", label)
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}
