package auth

import "context"

const (
	RoleVendor = "vendor"
	RoleBuyer  = "buyer"
)

// User is the caller identity carried through a request.
type User struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Name   string `json:"name"`
}

type ctxKey struct{}

func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*User)
	return u, ok && u != nil
}

// GetVendorID returns the calling vendor's id, or "" when the caller is not an
// authenticated vendor. Metadata identities are resolved by the gRPC interceptor.
func GetVendorID(ctx context.Context) string {
	if u, ok := UserFromContext(ctx); ok {
		if u.Role == RoleVendor {
			return u.UserID
		}
	}
	return ""
}
