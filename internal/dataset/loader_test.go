package dataset

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"dataitjobs/internal/pkg/apperror"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubSource struct {
	raw   RawTables
	err   error
	panic bool
}

func (s stubSource) Name() string { return "stub" }

func (s stubSource) Read(context.Context) (RawTables, error) {
	if s.panic {
		panic("boom")
	}
	return s.raw, s.err
}

func TestLoader_UsesSource(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir)

	res := NewLoader(NewCSVSource(dir), LoaderOptions{SyntheticSeed: 1}, zap.NewNop()).Load(context.Background())
	if res.Synthetic {
		t.Fatalf("expected real data, got synthetic (warning=%q)", res.Warning)
	}
	if res.Source != "csv" || len(res.Tables.Jobs) != 2 {
		t.Fatalf("unexpected result: source=%s jobs=%d", res.Source, len(res.Tables.Jobs))
	}
}

func TestLoader_FallsBackToSynthetic(t *testing.T) {
	cases := map[string]Source{
		"missing dir": NewCSVSource(t.TempDir()),
		"error":       stubSource{err: errors.New("connection refused")},
		"empty":       stubSource{},
		"panic":       stubSource{panic: true},
		"nil source":  nil,
	}

	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			res := NewLoader(src, LoaderOptions{SyntheticSeed: 42, SyntheticJobs: 100}, nil).Load(context.Background())
			if !res.Synthetic {
				t.Fatalf("expected synthetic fallback")
			}
			if res.Warning == "" {
				t.Fatalf("expected a warning for the user")
			}
			if len(res.Tables.Jobs) != 100 {
				t.Fatalf("expected 100 synthetic jobs, got %d", len(res.Tables.Jobs))
			}
		})
	}
}

func TestSynthetic_DeterministicPerSeed(t *testing.T) {
	a := Synthetic(42, 200)
	b := Synthetic(42, 200)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical datasets for the same seed")
	}

	c := Synthetic(43, 200)
	if reflect.DeepEqual(a.Jobs, c.Jobs) {
		t.Fatalf("expected different datasets for different seeds")
	}
}

func TestLoader_LogsFailureStack(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	src := stubSource{err: apperror.NotFound("jobs file", nil)}

	NewLoader(src, LoaderOptions{SyntheticSeed: 1, SyntheticJobs: 10}, zap.New(core)).Load(context.Background())

	entries := logs.FilterMessage("dataset load failed, using synthetic data").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["error_type"] != string(apperror.TypeNotFound) {
		t.Fatalf("unexpected error type: %v", fields["error_type"])
	}
	if stack, _ := fields["stack"].(string); stack == "" {
		t.Fatalf("expected the captured stack in the log entry")
	}
}
