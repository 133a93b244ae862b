package requestctx

import (
	"context"
	"testing"
)

func TestSessionTokenFromContextRoundTrip(t *testing.T) {
	ctx := WithSessionToken(context.Background(), "tok-42")
	if got := SessionTokenFromContext(ctx); got != "tok-42" {
		t.Fatalf("SessionTokenFromContext = %q, want %q", got, "tok-42")
	}
}

func TestSessionTokenFromContextEmpty(t *testing.T) {
	if got := SessionTokenFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

//nolint:staticcheck // nil context is part of the contract
func TestNilContexts(t *testing.T) {
	if got := SessionTokenFromContext(nil); got != "" {
		t.Fatalf("expected empty token for nil context, got %q", got)
	}
	if got := LocaleFromContext(nil); got != "" {
		t.Fatalf("expected empty locale for nil context, got %q", got)
	}
	ctx := WithLocale(nil, "pt-BR")
	if got := LocaleFromContext(ctx); got != "pt-BR" {
		t.Fatalf("LocaleFromContext = %q, want pt-BR", got)
	}
	ctx = WithSessionToken(nil, "tok")
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
}
