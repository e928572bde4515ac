// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestRunnerExecutesStepsInOrder(t *testing.T) {
	var ran []string
	step := func(name string) Step {
		return Step{Name: name, Run: func(context.Context) error {
			ran = append(ran, name)
			return nil
		}}
	}

	err := NewRunner(discardLogger()).Run(context.Background(), []Step{
		step("one"), step("two"), step("three"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ran, []string{"one", "two", "three"}) {
		t.Errorf("steps ran out of order: %v", ran)
	}
}

func TestRunnerStopsAtFirstFailure(t *testing.T) {
	var ran []string
	boom := errors.New("boom")

	err := NewRunner(discardLogger()).Run(context.Background(), []Step{
		{Name: "ok", Run: func(context.Context) error { ran = append(ran, "ok"); return nil }},
		{Name: "fails", Run: func(context.Context) error { return boom }},
		{Name: "never", Run: func(context.Context) error { ran = append(ran, "never"); return nil }},
	})

	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped step error, got %v", err)
	}
	if !strings.Contains(err.Error(), "fails") {
		t.Errorf("error does not name the failing step: %v", err)
	}
	if !reflect.DeepEqual(ran, []string{"ok"}) {
		t.Errorf("steps after failure must not run: %v", ran)
	}
}

func TestRunnerSkipsMarkedSteps(t *testing.T) {
	var ran []string
	err := NewRunner(discardLogger()).Run(context.Background(), []Step{
		{Name: "skipped", Skip: true, Run: func(context.Context) error { ran = append(ran, "skipped"); return nil }},
		{Name: "runs", Run: func(context.Context) error { ran = append(ran, "runs"); return nil }},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ran, []string{"runs"}) {
		t.Errorf("skip not honored: %v", ran)
	}
}
