package remote

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Server wraps a gRPC server hosting the nutcache.Cache service. Panic
// recovery is always installed so that a misbehaving store cannot crash
// the process.
type Server struct {
	grpcServer *grpc.Server
}

// config holds the internal configuration assembled via functional options.
type config struct {
	unaryInterceptors []grpc.UnaryServerInterceptor
}

// Option configures a Server.
type Option func(*config)

// WithUnaryInterceptor appends a unary server interceptor to the chain,
// after the built-in recovery interceptor.
func WithUnaryInterceptor(i grpc.UnaryServerInterceptor) Option {
	return func(c *config) {
		c.unaryInterceptors = append(c.unaryInterceptors, i)
	}
}

// NewServer creates a Server exposing h as the nutcache.Cache service.
func NewServer(h Handler, opts ...Option) *Server {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}

	chain := append([]grpc.UnaryServerInterceptor{recoveryUnary()}, cfg.unaryInterceptors...)
	gs := grpc.NewServer(grpc.ChainUnaryInterceptor(chain...))
	Register(gs, h)

	return &Server{grpcServer: gs}
}

// GRPC returns the underlying *grpc.Server so callers can serve it and
// register additional services.
func (s *Server) GRPC() *grpc.Server {
	return s.grpcServer
}

// MetricsHandler returns an http.Handler that serves Prometheus metrics
// from the default registry.
func (s *Server) MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// recoveryUnary returns a unary server interceptor that recovers from
// panics and returns an Internal gRPC error instead of crashing the
// process.
func recoveryUnary() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				resp = nil
				err = status.Error(codes.Internal, "internal server error")
			}
		}()
		return handler(ctx, req)
	}
}
