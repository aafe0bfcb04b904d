package project

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrompterFill(t *testing.T) {
	in := strings.NewReader("A small tool\n\nApache-2.0\n")
	var out bytes.Buffer

	m := &Metadata{Name: "tool"}
	if err := NewPrompter(in, &out).Fill(m, Metadata{Author: "Sam", License: "MIT"}); err != nil {
		t.Fatalf("Fill() error: %v", err)
	}

	want := Metadata{Name: "tool", Description: "A small tool", Author: "Sam", License: "Apache-2.0"}
	if *m != want {
		t.Errorf("Fill() = %+v, want %+v", *m, want)
	}
	if !strings.Contains(out.String(), "Author [Sam]: ") {
		t.Errorf("prompt output %q should show the default author", out.String())
	}
}

func TestPrompterFill_SkipsPresetFields(t *testing.T) {
	in := strings.NewReader("GPL-3.0\n")
	var out bytes.Buffer

	m := &Metadata{Name: "tool", Description: "preset", Author: "preset"}
	if err := NewPrompter(in, &out).Fill(m, Metadata{}); err != nil {
		t.Fatalf("Fill() error: %v", err)
	}
	if m.License != "GPL-3.0" {
		t.Errorf("License = %q, want GPL-3.0", m.License)
	}
	if strings.Contains(out.String(), "Author") {
		t.Error("preset fields should not be prompted")
	}
}

func TestPrompterAsk_EOF(t *testing.T) {
	p := NewPrompter(strings.NewReader("no newline"), &bytes.Buffer{})
	got, err := p.Ask("Author", "")
	if err != nil || got != "no newline" {
		t.Errorf("Ask() = %q, %v; want %q, nil", got, err, "no newline")
	}

	got, err = p.Ask("License name", "MIT")
	if err != nil || got != "MIT" {
		t.Errorf("Ask() at EOF = %q, %v; want default", got, err)
	}
}
