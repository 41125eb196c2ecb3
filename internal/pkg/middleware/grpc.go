package middleware

import (
	"context"

	"github.com/fekuna/florist-marketplace-service/internal/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// ContextInterceptor resolves the caller identity from the authorization
// metadata and stores it in the request context. Calls without credentials
// pass through anonymously; handlers decide what needs an identity.
// With allowMetadataIdentity set, x-vendor-id / x-user-role are trusted as-is.
func ContextInterceptor(secret []byte, allowMetadataIdentity bool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return handler(ctx, req)
		}

		if vals := md.Get("authorization"); len(vals) > 0 {
			token, ok := auth.BearerToken(vals[0])
			if !ok {
				return nil, status.Error(codes.Unauthenticated, "malformed authorization header")
			}
			user, err := auth.ParseToken(secret, token)
			if err != nil {
				return nil, status.Error(codes.Unauthenticated, err.Error())
			}
			return handler(auth.WithUser(ctx, user), req)
		}

		if allowMetadataIdentity {
			if ids := md.Get("x-vendor-id"); len(ids) > 0 && ids[0] != "" {
				role := auth.RoleVendor
				if roles := md.Get("x-user-role"); len(roles) > 0 && roles[0] != "" {
					role = roles[0]
				}
				ctx = auth.WithUser(ctx, &auth.User{UserID: ids[0], Role: role})
			}
		}

		return handler(ctx, req)
	}
}
