package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("function", nil); msg != "a function is not JSON-serializable" {
		t.Fatalf("unexpected english message: %q", msg)
	}

	SetLanguage("ja")
	if msg := T("function", nil); msg == "a function is not JSON-serializable" || msg == "function" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_FillsValue(t *testing.T) {
	for _, s := range []string{"NaN", "+Inf", "-Inf"} {
		got := T("non_finite", map[string]string{"value": s})
		if want := s + " is not JSON-serializable"; got != want {
			t.Fatalf("got %q want %q", got, want)
		}
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestTranslator_Custom(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	if got := T("symbol", nil); got != "X:symbol" {
		t.Fatalf("custom translator not used: %q", got)
	}
	SetTranslator(nil)
	if got := T("unknown_code", nil); got != "unknown_code" {
		t.Fatalf("unknown codes should echo the code, got %q", got)
	}
}
