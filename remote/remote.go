// Package remote exposes a byte-valued cache store over gRPC, so that a
// nutcache store can be shared between processes. It uses
// [grpc.ServiceDesc] registration so that no protobuf code generation is
// required.
//
// Because the request/response types are plain Go structs (not generated
// protobuf messages), the package registers a thin codec wrapper that
// JSON-encodes cache types while delegating all other messages to the
// standard proto codec. Import this package (or call [Register]) to
// activate the codec automatically.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/grpc"
	grpcEncoding "google.golang.org/grpc/encoding"
	_ "google.golang.org/grpc/encoding/proto" // ensure default proto codec is registered first
	"google.golang.org/protobuf/proto"

	"github.com/Keksclan/goNutCache/store"
)

// GetRequest is the input for the Get method.
type GetRequest struct {
	Key string `json:"key"`
}

// GetResponse is the output of the Get method. Found distinguishes a
// stored empty value from a miss.
type GetResponse struct {
	Value []byte `json:"value"`
	Found bool   `json:"found"`
}

// PutRequest is the input for the Put method. TTLSeconds of zero means
// the store's default expiration.
type PutRequest struct {
	Key        string `json:"key"`
	Value      []byte `json:"value"`
	TTLSeconds int64  `json:"ttl_seconds"`
}

// PutResponse is the output of the Put method.
type PutResponse struct{}

// DelRequest is the input for the Del method.
type DelRequest struct {
	Key string `json:"key"`
}

// DelResponse is the output of the Del method.
type DelResponse struct{}

// cacheMsg is a marker interface satisfied by all remote cache messages.
type cacheMsg interface {
	isCacheMsg()
}

func (*GetRequest) isCacheMsg()  {}
func (*GetResponse) isCacheMsg() {}
func (*PutRequest) isCacheMsg()  {}
func (*PutResponse) isCacheMsg() {}
func (*DelRequest) isCacheMsg()  {}
func (*DelResponse) isCacheMsg() {}

// Handler is the interface a remote cache service implementation must
// satisfy.
type Handler interface {
	Get(ctx context.Context, req *GetRequest) (*GetResponse, error)
	Put(ctx context.Context, req *PutRequest) (*PutResponse, error)
	Del(ctx context.Context, req *DelRequest) (*DelResponse, error)
}

// StoreHandler returns a Handler backed by st. It serves committed
// entries only; compute-if-absent coordination stays client-side.
func StoreHandler(st store.Store[string, []byte]) Handler {
	return storeHandler{st: st}
}

type storeHandler struct {
	st store.Store[string, []byte]
}

func (h storeHandler) Get(ctx context.Context, req *GetRequest) (*GetResponse, error) {
	val, ok, err := h.st.Lookup(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	return &GetResponse{Value: val, Found: ok}, nil
}

func (h storeHandler) Put(ctx context.Context, req *PutRequest) (*PutResponse, error) {
	ttl := time.Duration(req.TTLSeconds) * time.Second
	if err := h.st.Insert(ctx, req.Key, req.Value, ttl); err != nil {
		return nil, err
	}
	return &PutResponse{}, nil
}

func (h storeHandler) Del(ctx context.Context, req *DelRequest) (*DelResponse, error) {
	if err := h.st.Remove(ctx, req.Key); err != nil {
		return nil, err
	}
	return &DelResponse{}, nil
}

// ServiceDesc is the grpc.ServiceDesc for the nutcache.Cache service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: "nutcache.Cache",
	HandlerType: (*Handler)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Get", Handler: getHandler},
		{MethodName: "Put", Handler: putHandler},
		{MethodName: "Del", Handler: delHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "nutcache/cache.proto",
}

func getHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(GetRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Handler).Get(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/nutcache.Cache/Get"}
	handler := func(ctx context.Context, r any) (any, error) {
		return srv.(Handler).Get(ctx, r.(*GetRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func putHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(PutRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Handler).Put(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/nutcache.Cache/Put"}
	handler := func(ctx context.Context, r any) (any, error) {
		return srv.(Handler).Put(ctx, r.(*PutRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func delHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(DelRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Handler).Del(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/nutcache.Cache/Del"}
	handler := func(ctx context.Context, r any) (any, error) {
		return srv.(Handler).Del(ctx, r.(*DelRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// Register registers a remote cache service implementation on the given
// gRPC server.
func Register(s *grpc.Server, h Handler) {
	s.RegisterService(&ServiceDesc, h)
}

// ---------- codec wrapper ----------

func init() {
	// Replace the default proto codec with a thin wrapper that JSON-encodes
	// cache types and delegates all other (protobuf) messages to proto.Marshal.
	grpcEncoding.RegisterCodec(cacheCodec{})
}

// cacheCodec wraps the default proto codec. It handles the remote cache
// messages via JSON, and delegates all other types to proto.Marshal/Unmarshal.
type cacheCodec struct{}

func (cacheCodec) Name() string { return "proto" }

func (cacheCodec) Marshal(v any) ([]byte, error) {
	if _, ok := v.(cacheMsg); ok {
		return json.Marshal(v)
	}
	if m, ok := v.(proto.Message); ok {
		return proto.Marshal(m)
	}
	return nil, fmt.Errorf("cache codec: unsupported message type %T", v)
}

func (cacheCodec) Unmarshal(data []byte, v any) error {
	if _, ok := v.(cacheMsg); ok {
		return json.Unmarshal(data, v)
	}
	if m, ok := v.(proto.Message); ok {
		return proto.Unmarshal(data, m)
	}
	return fmt.Errorf("cache codec: unsupported message type %T", v)
}
