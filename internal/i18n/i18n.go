package i18n

import (
	"strings"

	"warranty/internal/util"
)

type Language string

const (
	Uz Language = "uz"
	Ru Language = "ru"
	En Language = "en"
)

// Detect prefers the Telegram client language, then the first Accept-Language
// tag, and falls back to English.
func Detect(telegramCode, acceptLanguage string) Language {
	if l, ok := parse(telegramCode); ok {
		return l
	}
	first, _, _ := strings.Cut(acceptLanguage, ",")
	if l, ok := parse(first); ok {
		return l
	}
	return En
}

func parse(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	code, _, _ = strings.Cut(code, ";")
	code, _, _ = strings.Cut(code, "-")
	switch Language(code) {
	case Uz:
		return Uz, true
	case Ru:
		return Ru, true
	}
	return "", false
}

const (
	NetworkError    = "network_error"
	NotFound        = "not_found"
	ValidationError = "validation_error"
	InvalidPhone    = "invalid_phone"
	Unauthorized    = "unauthorized"
	ServerError     = "server_error"
)

var messages = map[Language]map[string]string{
	Uz: {
		NetworkError:    "Tarmoq xatosi",
		NotFound:        "Ma'lumot topilmadi",
		ValidationError: "Maydon to'ldirilmagan: {field}",
		InvalidPhone:    "Telefon raqami noto'g'ri: +998 XX XXX-XX-XX",
		Unauthorized:    "Avval tizimga kiring",
		ServerError:     "Xatolik yuz berdi",
	},
	Ru: {
		NetworkError:    "Ошибка сети",
		NotFound:        "Данные не найдены",
		ValidationError: "Проверьте поле: {field}",
		InvalidPhone:    "Неверный номер телефона: +998 XX XXX-XX-XX",
		Unauthorized:    "Сначала войдите в систему",
		ServerError:     "Произошла ошибка",
	},
	En: {
		NetworkError:    "Network error",
		NotFound:        "Nothing found",
		ValidationError: "Check the field: {field}",
		InvalidPhone:    "Invalid phone number: +998 XX XXX-XX-XX",
		Unauthorized:    "Please sign in first",
		ServerError:     "Something went wrong",
	},
}

// Message returns the text for key in lang, English when lang lacks it,
// and the key itself when nobody has it.
func Message(lang Language, key string, vars map[string]string) string {
	msg, ok := messages[lang][key]
	if !ok {
		msg, ok = messages[En][key]
	}
	if !ok {
		return key
	}
	return util.RenderTemplate(msg, vars)
}
