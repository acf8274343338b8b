package utils

import (
	"context"
)

type contextKey string

const (
	RoleKey contextKey = "role"
)

const RoleAdmin = "admin"

func GetRoleFromContext(ctx context.Context) (string, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(string)
	return role, ok
}

func SetRoleContext(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, RoleKey, role)
}

// IsAdmin reports whether the request passed the operator token check.
func IsAdmin(ctx context.Context) bool {
	role, ok := GetRoleFromContext(ctx)
	return ok && role == RoleAdmin
}
