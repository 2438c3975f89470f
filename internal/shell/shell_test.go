package shell

import (
	"strings"
	"testing"
)

func TestPromptTrimsWhitespace(t *testing.T) {
	var out, errOut strings.Builder
	s := New(strings.NewReader("  widget  \n"), &out, &errOut)

	got, err := s.Prompt("Product name:")
	if err != nil {
		t.Fatalf("Prompt returned an unexpected error: %v", err)
	}
	if got != "widget" {
		t.Errorf("got %q, want %q", got, "widget")
	}
	if out.String() != "Product name: " {
		t.Errorf("prompt output: got %q", out.String())
	}
}

// TestPromptLastLineWithoutNewline covers piped input that does not end in
// a newline.
func TestPromptLastLineWithoutNewline(t *testing.T) {
	var out, errOut strings.Builder
	s := New(strings.NewReader("widget"), &out, &errOut)

	got, err := s.Prompt("Product name:")
	if err != nil {
		t.Fatalf("Prompt returned an unexpected error: %v", err)
	}
	if got != "widget" {
		t.Errorf("got %q, want %q", got, "widget")
	}
}

func TestPromptEmptyInputIsAnError(t *testing.T) {
	var out, errOut strings.Builder
	s := New(strings.NewReader(""), &out, &errOut)

	if _, err := s.Prompt("Product name:"); err == nil {
		t.Fatal("expected an error on exhausted input, got nil")
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"yep\n", false},
	}

	for _, tt := range tests {
		var out, errOut strings.Builder
		s := New(strings.NewReader(tt.input), &out, &errOut)

		got, err := s.Confirm("Delete product 'widget'?")
		if err != nil {
			t.Fatalf("input %q: Confirm returned an unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("input %q: got %v, want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "[y/N]") {
			t.Errorf("input %q: prompt should show the default: %q", tt.input, out.String())
		}
	}
}

// TestPromptHiddenFallsBackOffTerminal verifies hidden prompting degrades
// to a plain line read when input is not a terminal, keeping the shell
// scriptable.
func TestPromptHiddenFallsBackOffTerminal(t *testing.T) {
	var out, errOut strings.Builder
	s := New(strings.NewReader("hunter2\n"), &out, &errOut)

	got, err := s.PromptHidden("Password:")
	if err != nil {
		t.Fatalf("PromptHidden returned an unexpected error: %v", err)
	}
	if got != "hunter2" {
		t.Errorf("got %q, want %q", got, "hunter2")
	}
}

func TestInfoAndErrorStreams(t *testing.T) {
	var out, errOut strings.Builder
	s := New(strings.NewReader(""), &out, &errOut)

	s.Info("hello")
	s.Error("oops")

	if out.String() != "hello\n" {
		t.Errorf("out: got %q", out.String())
	}
	if errOut.String() != "oops\n" {
		t.Errorf("err: got %q", errOut.String())
	}
}
