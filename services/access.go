package services

import "context"

type privilegeKey struct{}

// WithPrivilege marks the context as coming from a privileged (admin) caller.
// Every mutating service method checks it; without it the call is a no-op.
func WithPrivilege(ctx context.Context, privileged bool) context.Context {
	return context.WithValue(ctx, privilegeKey{}, privileged)
}

func IsPrivileged(ctx context.Context) bool {
	ok, _ := ctx.Value(privilegeKey{}).(bool)
	return ok
}
