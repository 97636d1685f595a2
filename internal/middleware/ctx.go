package middleware

import "context"

type ctxKey string

// ContextSkipGuards ставится админам, чтобы пропускать проверки ролей.
const ContextSkipGuards ctxKey = "skip_guards"

func WithSkipGuards(ctx context.Context) context.Context {
	return context.WithValue(ctx, ContextSkipGuards, true)
}

func SkipGuards(ctx context.Context) bool {
	b, _ := ctx.Value(ContextSkipGuards).(bool)
	return b
}
