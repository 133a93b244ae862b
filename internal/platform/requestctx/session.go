package requestctx

import "context"

type sessionTokenContextKey struct{}

type localeContextKey struct{}

// WithSessionToken stores the raw session token in context.
func WithSessionToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sessionTokenContextKey{}, token)
}

// SessionTokenFromContext returns the raw session token stored in context.
func SessionTokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(sessionTokenContextKey{}).(string)
	return value
}

// WithLocale stores the resolved locale tag in context.
func WithLocale(ctx context.Context, locale string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// LocaleFromContext returns the locale tag stored in context.
func LocaleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(localeContextKey{}).(string)
	return value
}
