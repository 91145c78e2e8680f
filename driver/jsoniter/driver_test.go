package jsoniter_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/strictjson"
	drv "github.com/reoring/strictjson/driver/jsoniter"
)

func useDriver(t *testing.T) {
	t.Helper()
	strictjson.SetDriver(drv.Driver())
	t.Cleanup(strictjson.UseDefaultDriver)
	if got := strictjson.CurrentDriver().Name(); got != "json-iterator" {
		t.Fatalf("driver not installed: %s", got)
	}
}

func TestDriver_StringifyMatchesStd(t *testing.T) {
	useDriver(t)
	v := map[string]any{
		"b": []any{true, nil, "x<y"},
		"a": 1,
		"c": map[string]any{"z": 1.5, "y": []any{}},
	}
	got, err := strictjson.Strict.Stringify(v, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	strictjson.UseDefaultDriver()
	want, err := strictjson.Strict.Stringify(v, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("driver output differs:\n got: %s\nwant: %s", got, want)
	}
}

func TestDriver_Indent(t *testing.T) {
	useDriver(t)
	got, err := strictjson.Strict.Stringify(map[string]any{"a": []any{1}}, nil, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "{\n  \"a\": [\n    1\n  ]\n}"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDriver_ValidationStillRuns(t *testing.T) {
	useDriver(t)
	_, err := strictjson.Strict.Stringify(map[string]any{"a": math.NaN()}, nil, nil)
	var ive *strictjson.InvalidValueError
	if !errors.As(err, &ive) || ive.Path() != "/a" {
		t.Fatalf("expected invalid value at /a, got %v", err)
	}
}

func TestDriver_Parse(t *testing.T) {
	useDriver(t)
	v, err := strictjson.Strict.Parse(`{"a":[1,"x",null],"b":{"c":true}}`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"a": []any{1.0, "x", nil}, "b": map[string]any{"c": true}}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("parse mismatch (-want +got):\n%s", diff)
	}
	if _, err := strictjson.Strict.Parse("{", nil); err == nil {
		t.Fatalf("expected a syntax error")
	}
}
