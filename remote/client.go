package remote

import (
	"context"
	"time"

	"google.golang.org/grpc"

	"github.com/Keksclan/goNutCache/retry"
)

// Client talks to a remote nutcache.Cache service. It implements
// [store.Store] for string keys and byte values, so a remote cache can
// serve as the far tier of a [store.Tiered].
type Client struct {
	conn  *grpc.ClientConn
	retry retry.Config
}

// NewClient creates a Client over an established connection. The
// connection remains owned by the caller. Calls use [retry.Defaults]
// until overridden with [Client.WithRetry].
func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn, retry: retry.Defaults()}
}

// WithRetry returns a copy of the client using cfg for retries.
func (c *Client) WithRetry(cfg retry.Config) *Client {
	return &Client{conn: c.conn, retry: cfg}
}

// Lookup retrieves the value for key from the remote cache.
func (c *Client) Lookup(ctx context.Context, key string) ([]byte, bool, error) {
	resp, err := retry.Do(ctx, c.retry, func(ctx context.Context) (*GetResponse, error) {
		resp := new(GetResponse)
		if err := c.conn.Invoke(ctx, "/nutcache.Cache/Get", &GetRequest{Key: key}, resp); err != nil {
			return nil, err
		}
		return resp, nil
	})
	if err != nil {
		return nil, false, err
	}
	return resp.Value, resp.Found, nil
}

// Insert stores val under key in the remote cache. The TTL is rounded
// down to whole seconds; zero means the remote store's default.
func (c *Client) Insert(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	req := &PutRequest{Key: key, Value: val, TTLSeconds: int64(ttl / time.Second)}
	_, err := retry.Do(ctx, c.retry, func(ctx context.Context) (*PutResponse, error) {
		resp := new(PutResponse)
		if err := c.conn.Invoke(ctx, "/nutcache.Cache/Put", req, resp); err != nil {
			return nil, err
		}
		return resp, nil
	})
	return err
}

// Remove deletes the entry for key from the remote cache.
func (c *Client) Remove(ctx context.Context, key string) error {
	_, err := retry.Do(ctx, c.retry, func(ctx context.Context) (*DelResponse, error) {
		resp := new(DelResponse)
		if err := c.conn.Invoke(ctx, "/nutcache.Cache/Del", &DelRequest{Key: key}, resp); err != nil {
			return nil, err
		}
		return resp, nil
	})
	return err
}
