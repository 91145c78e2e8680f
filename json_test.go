package strictjson_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/strictjson"
)

func TestJSON_EnabledSwitches(t *testing.T) {
	if !strictjson.Strict.Strict() || strictjson.Native.Strict() {
		t.Fatalf("implementations report the wrong mode")
	}
	if strictjson.Strict.Enabled(true) != strictjson.Strict {
		t.Fatalf("enabling strict must keep strict")
	}
	// Toggle more than necessary to cover every path.
	got := strictjson.Strict.Enabled(false).Enabled(true).Enabled(false).Enabled(false)
	if got != strictjson.Native {
		t.Fatalf("expected native implementation")
	}
}

func TestJSON_DefaultReadsModeAtCallTime(t *testing.T) {
	t.Cleanup(func() { strictjson.SetEnabled(true) })

	strictjson.SetEnabled(true)
	if _, err := strictjson.Stringify([]any{math.NaN()}, nil, nil); err == nil {
		t.Fatalf("strict default should reject NaN")
	}
	strictjson.SetEnabled(false)
	if strictjson.Default() != strictjson.Native {
		t.Fatalf("default should follow the switch")
	}
	if _, err := strictjson.Stringify([]any{math.NaN()}, nil, nil); err == nil {
		t.Fatalf("native default should surface the driver error")
	} else if _, ok := strictjson.AsLocated(err); ok {
		t.Fatalf("native default must not validate: %v", err)
	}
	strictjson.SetEnabled(true)
	if strictjson.Default() != strictjson.Strict {
		t.Fatalf("default should follow the switch back")
	}
}

func TestNative_PassThrough(t *testing.T) {
	v := map[string]any{"x": 42, "y": []any{0, 8, 15}}
	got, err := strictjson.Native.Stringify(v, nil, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, _ := json.MarshalIndent(v, "", "    ")
	if got != string(want) {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestNative_UndefinedAndReplacer(t *testing.T) {
	v := map[string]any{"a": strictjson.Undefined, "b": []any{strictjson.Undefined, 1}, "c": 3}
	got, err := strictjson.Native.Stringify(v, func(key string, value any) any {
		if key == "c" {
			return strictjson.Undefined
		}
		return value
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"b":[null,1]}` {
		t.Fatalf("got %s", got)
	}
	if s, err := strictjson.Native.Stringify(strictjson.Undefined, nil, nil); s != "" || err != nil {
		t.Fatalf("root undefined renders nothing, got %q, %v", s, err)
	}
}

func TestNative_CycleIsADriverStyleError(t *testing.T) {
	o := map[string]any{}
	o["self"] = o
	_, err := strictjson.Native.Stringify(o, nil, nil)
	if _, ok := err.(*json.UnsupportedValueError); !ok {
		t.Fatalf("expected *json.UnsupportedValueError, got %T %v", err, err)
	}
}

func TestParse_Delegates(t *testing.T) {
	v, err := strictjson.Parse(`{"a":[1,2,{"b":null}],"c":"d"}`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var want any
	_ = json.Unmarshal([]byte(`{"a":[1,2,{"b":null}],"c":"d"}`), &want)
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("parse mismatch (-want +got):\n%s", diff)
	}
	if _, err := strictjson.Native.Parse(`[1,`, nil); err == nil {
		t.Fatalf("expected syntax error")
	}
}

func TestParse_Reviver(t *testing.T) {
	var seen []string
	v, err := strictjson.Parse(`{"keep":1,"drop":2,"list":[1,2,3]}`, func(holder any, key string, value any) any {
		seen = append(seen, key)
		switch key {
		case "drop":
			return strictjson.Undefined
		case "1":
			return strictjson.Undefined
		}
		if f, ok := value.(float64); ok {
			return f * 10
		}
		return value
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"keep": 10.0, "list": []any{10.0, nil, 30.0}}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("revived mismatch (-want +got):\n%s", diff)
	}
	if seen[len(seen)-1] != "" {
		t.Fatalf("root must be revived last, got order %v", seen)
	}
}

func TestUnmarshal_Delegates(t *testing.T) {
	var out struct {
		A int `json:"a"`
	}
	if err := strictjson.Unmarshal([]byte(`{"a":3}`), &out); err != nil || out.A != 3 {
		t.Fatalf("unexpected result %+v, %v", out, err)
	}
	if err := strictjson.Unmarshal([]byte(`nope`), &out); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestParse_ReviverVisitsMembersInKeyOrder(t *testing.T) {
	for range 5 {
		var seen []string
		_, err := strictjson.Parse(`{"d":1,"b":{"z":1,"y":2},"a":3,"c":[4]}`, func(holder any, key string, value any) any {
			seen = append(seen, key)
			return value
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"a", "y", "z", "b", "0", "c", "d", ""}
		if diff := cmp.Diff(want, seen); diff != "" {
			t.Fatalf("reviver order mismatch (-want +got):\n%s", diff)
		}
	}
}
