// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Settings: {
	name:  string & !=""
	count: int & >=1 & <=10
	label?: string & !=""
}
`

type settings struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Label string `json:"label,omitempty"`
}

func TestDecodeValidDocument(t *testing.T) {
	got, err := Decode[settings]([]byte(testSchema), []byte(`name: "probe", count: 3`), "#Settings")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "probe" || got.Count != 3 {
		t.Errorf("decoded value = %+v", got)
	}
}

func TestDecodeRejectsSchemaViolation(t *testing.T) {
	_, err := Decode[settings]([]byte(testSchema), []byte(`name: "probe", count: 99`), "#Settings")
	if err == nil {
		t.Fatal("expected validation error for out-of-range count")
	}
	if !strings.Contains(err.Error(), "count") {
		t.Errorf("expected error to name the field, got: %v", err)
	}
}

func TestDecodeConcreteRequiresAllFields(t *testing.T) {
	// count is declared but never given a value.
	_, err := Decode[settings]([]byte(testSchema), []byte(`name: "probe"`), "#Settings")
	if err == nil {
		t.Fatal("expected error for missing concrete value")
	}
}

func TestDecodeNonConcreteToleratesUnsetFields(t *testing.T) {
	// Mirrors the config-file case: every schema field optional, only some
	// set in the document.
	schema := []byte(`
#Options: {
	name?:  string & !=""
	count?: int & >=1 & <=10
}
`)

	got, err := Decode[map[string]any](
		schema,
		[]byte(`name: "probe"`),
		"#Options",
		WithConcrete(false),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if (*got)["name"] != "probe" {
		t.Errorf("decoded map = %v", *got)
	}
	if _, ok := (*got)["count"]; ok {
		t.Errorf("unset field must not appear in decoded map: %v", *got)
	}
}

func TestDecodeReportsFilename(t *testing.T) {
	_, err := Decode[settings](
		[]byte(testSchema),
		[]byte(`name: "probe", count: `),
		"#Settings",
		WithFilename("camera.cue"),
	)
	if err == nil || !strings.Contains(err.Error(), "camera.cue") {
		t.Errorf("expected filename in error, got: %v", err)
	}
}

func TestDecodeRejectsOversizedDocument(t *testing.T) {
	data := []byte(`name: "` + strings.Repeat("x", int(DefaultMaxFileSize)) + `", count: 1`)
	_, err := Decode[settings]([]byte(testSchema), data, "#Settings")
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("expected size limit error, got: %v", err)
	}
}
