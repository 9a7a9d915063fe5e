package httpserver

import (
	"context"

	"warranty/internal/i18n"
	"warranty/internal/telegram"
)

type ctxKey int

const (
	identityKey ctxKey = iota
	languageKey
)

func withIdentity(ctx context.Context, u *telegram.User) context.Context {
	return context.WithValue(ctx, identityKey, u)
}

// IdentityFrom returns the verified Telegram user, if init data was checked.
func IdentityFrom(ctx context.Context) (*telegram.User, bool) {
	u, ok := ctx.Value(identityKey).(*telegram.User)
	return u, ok && u != nil
}

func withLanguage(ctx context.Context, l i18n.Language) context.Context {
	return context.WithValue(ctx, languageKey, l)
}

func LanguageFrom(ctx context.Context) i18n.Language {
	if l, ok := ctx.Value(languageKey).(i18n.Language); ok {
		return l
	}
	return i18n.En
}
