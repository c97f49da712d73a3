package i18n

import "fmt"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "repository").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須プロパティが不足しています"
		case "invalid_enum":
			if v, ok := data["allowed"]; ok {
				return "次のいずれかでなければなりません: " + v
			}
			return "許可されていない値です"
		case "unknown_target_repository":
			return fmt.Sprintf("未知のターゲットリポジトリ %q です (既知: %s)", data["repository"], data["known"])
		case "missing_required_field":
			return fmt.Sprintf("必須フィールド %q がマッピングされていません", data["field"])
		case "unsupported_source_type":
			return fmt.Sprintf("サポートされていないソース種別 %q です", data["type"])
		case "malformed_source":
			return "ソースデータを解析できません"
		case "parse_error":
			return "解析エラー"
		case "dependency_unavailable":
			return "依存先サービスが利用できません"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			if v, ok := data["expected"]; ok {
				return "invalid type: expected " + v
			}
			return "invalid type"
		case "required":
			return "required property missing"
		case "invalid_enum":
			if v, ok := data["allowed"]; ok {
				return "must be one of: " + v
			}
			return "value not allowed"
		case "unknown_target_repository":
			return fmt.Sprintf("unknown target repository %q (known repositories: %s)", data["repository"], data["known"])
		case "missing_required_field":
			return fmt.Sprintf("required field %q of %q is not covered by any field mapping", data["field"], data["repository"])
		case "unsupported_source_type":
			return fmt.Sprintf("unsupported source type %q", data["type"])
		case "malformed_source":
			return "source payload could not be parsed"
		case "parse_error":
			return "parse error"
		case "dependency_unavailable":
			return "dependency unavailable"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
