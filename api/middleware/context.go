package middleware

import "context"

type contextKey string

const (
	ctxUserID   contextKey = "user_id"
	ctxUserName contextKey = "user_name"
	ctxIsAdmin  contextKey = "is_admin"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func UserNameFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserName).(string); ok {
		return v
	}
	return ""
}

func IsAdminFromContext(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	if v, ok := ctx.Value(ctxIsAdmin).(bool); ok {
		return v
	}
	return false
}

// WithSession injects the authenticated caller into the context. Exposed for
// handler tests.
func WithSession(ctx context.Context, userID, userName string, isAdmin bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxUserName, userName)
	return context.WithValue(ctx, ctxIsAdmin, isAdmin)
}
