package i18n

import (
	"strings"
	"sync/atomic"
)

// Translator retrieves localized messages for error codes.
// data provides optional values to embed in the message (for example,
// "value" for the string form of a non-finite number).
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "error_value":
			return "エラーオブジェクトは JSON に変換できません"
		case "regexp":
			return "正規表現は JSON に変換できません"
		case "undefined":
			return "undefined は JSON に変換できません"
		case "symbol":
			return "シンボルは JSON に変換できません"
		case "function":
			return "関数は JSON に変換できません"
		case "bigint":
			return "多倍長整数は JSON に変換できません"
		case "non_finite":
			return fill("{value} は JSON に変換できません", data)
		case "invalid_type":
			return "不正な型です"
		case "invalid_key":
			return fill("マップのキー型 {type} は JSON に変換できません", data)
		case "invalid_number":
			return fill("{value} は JSON の数値として不正です", data)
		case "circular_reference":
			return "循環参照です"
		}
	default: // "en"
		switch code {
		case "error_value":
			return "an error value is not JSON-serializable"
		case "regexp":
			return "a regular expression is not JSON-serializable"
		case "undefined":
			return "undefined is not JSON-serializable"
		case "symbol":
			return "a symbol is not JSON-serializable"
		case "function":
			return "a function is not JSON-serializable"
		case "bigint":
			return "a big integer is not JSON-serializable"
		case "non_finite":
			return fill("{value} is not JSON-serializable", data)
		case "invalid_type":
			return "invalid type"
		case "invalid_key":
			return fill("map key type {type} is not JSON-serializable", data)
		case "invalid_number":
			return fill("{value} is not a valid JSON number", data)
		case "circular_reference":
			return "circular reference"
		}
	}
	return code
}

func fill(tmpl string, data map[string]string) string {
	for k, v := range data {
		tmpl = strings.ReplaceAll(tmpl, "{"+k+"}", v)
	}
	return tmpl
}

type holder struct{ tr Translator }

var currentTranslator atomic.Pointer[holder]

func init() { currentTranslator.Store(&holder{tr: dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator.Store(&holder{tr: dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). A nil Translator restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	currentTranslator.Store(&holder{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	return currentTranslator.Load().tr.Message(code, data)
}
