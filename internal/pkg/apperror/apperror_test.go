package apperror

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestNew_WrapsCauseAndCapturesStack(t *testing.T) {
	err := NotFound("jobs file", fs.ErrNotExist)

	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected errors.Is to see the cause")
	}
	if len(err.StackTrace()) == 0 {
		t.Fatalf("expected a captured stack")
	}
	if !strings.Contains(err.Error(), "NOT_FOUND: jobs file") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestTypeOf(t *testing.T) {
	wrapped := errors.Join(errors.New("other"), Malformed("bad header", nil))
	if got := TypeOf(wrapped); got != TypeMalformed {
		t.Fatalf("expected %s, got %s", TypeMalformed, got)
	}
	if got := TypeOf(errors.New("plain")); got != "" {
		t.Fatalf("expected empty type, got %s", got)
	}
}

func TestStackOf(t *testing.T) {
	err := fmt.Errorf("load: %w", Unavailable("postgres down", nil))
	if len(StackOf(err)) == 0 {
		t.Fatalf("expected stack through wrapping")
	}
	if StackOf(errors.New("plain")) != nil {
		t.Fatalf("expected no stack for a plain error")
	}
}
