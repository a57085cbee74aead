package remote

import (
	"context"
	"crypto/subtle"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// AuthFunc authenticates a remote cache request. It receives the request
// context, the full method name, and the incoming metadata. On success it
// returns a (possibly enriched) context; on failure it returns an error.
type AuthFunc func(ctx context.Context, fullMethod string, md metadata.MD) (context.Context, error)

// errUnauthenticated is allocated once to avoid per-request allocations on the hot path.
var errUnauthenticated = status.Error(codes.Unauthenticated, "unauthenticated")

// authError returns the original error if it is already a gRPC status error,
// otherwise wraps it as codes.Unauthenticated.
func authError(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	return errUnauthenticated
}

// AuthUnary returns a unary server interceptor that calls fn before
// forwarding to the handler. Pass it to [WithUnaryInterceptor] to protect
// a cache server.
func AuthUnary(fn AuthFunc) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		newCtx, err := fn(ctx, info.FullMethod, md)
		if err != nil {
			return nil, authError(err)
		}
		return handler(newCtx, req)
	}
}

// TokenAuth returns an AuthFunc that checks the "authorization" metadata
// entry against a shared secret. Suitable for cache servers reachable
// only inside a trusted network.
func TokenAuth(token string) AuthFunc {
	return func(ctx context.Context, _ string, md metadata.MD) (context.Context, error) {
		vals := md.Get("authorization")
		if len(vals) == 0 {
			return nil, errUnauthenticated
		}
		if subtle.ConstantTimeCompare([]byte(vals[0]), []byte(token)) != 1 {
			return nil, errUnauthenticated
		}
		return ctx, nil
	}
}
