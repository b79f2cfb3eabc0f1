package golembase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// RPCClient talks JSON-RPC to a Golem Base provider over HTTP, with a
// websocket side channel for log subscriptions. Writes are submitted through
// the provider's batch endpoints; the provider derives the sender account
// from the configured private key.
type RPCClient struct {
	cfg    Config
	http   *http.Client
	log    *zap.Logger
	nextID atomic.Int64
	ws     *websocket.Conn
}

// Dial creates a client for the configured endpoint. The HTTP connection is
// lazy; the websocket is only dialed on WatchLogs.
func Dial(cfg Config, log *zap.Logger) (*RPCClient, error) {
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("golembase: rpc_url is not set")
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &RPCClient{
		cfg:  cfg,
		http: &http.Client{Transport: transport, Timeout: timeoutDuration},
		log:  log,
	}, nil
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// call performs one JSON-RPC round trip and unmarshals the result into out.
func (c *RPCClient) call(ctx context.Context, method string, params []any, out any) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("golembase: marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.RPCURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("golembase: build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.PrivateKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.PrivateKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("golembase: %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("golembase: %s: unexpected status %s", method, resp.Status)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("golembase: decode %s response: %w", method, err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("golembase: %s: rpc error %d: %s", method, rpcResp.Error.Code, rpcResp.Error.Message)
	}
	if out != nil {
		if err := json.Unmarshal(rpcResp.Result, out); err != nil {
			return fmt.Errorf("golembase: unmarshal %s result: %w", method, err)
		}
	}
	return nil
}

// QueryEntities returns every entity matching the query string.
func (c *RPCClient) QueryEntities(ctx context.Context, query string) ([]Entity, error) {
	var entities []Entity
	if err := c.call(ctx, "golembase_queryEntities", []any{query}, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}

// CreateEntities writes a batch of new entities.
func (c *RPCClient) CreateEntities(ctx context.Context, creates []Create) ([]Receipt, error) {
	if c.cfg.PrivateKey == "" {
		return nil, fmt.Errorf("golembase: private key required for create")
	}
	var receipts []Receipt
	if err := c.call(ctx, "golembase_createEntities", []any{creates}, &receipts); err != nil {
		return nil, err
	}
	return receipts, nil
}

// UpdateEntities replaces a batch of existing entities in place.
func (c *RPCClient) UpdateEntities(ctx context.Context, updates []Update) ([]Receipt, error) {
	if c.cfg.PrivateKey == "" {
		return nil, fmt.Errorf("golembase: private key required for update")
	}
	var receipts []Receipt
	if err := c.call(ctx, "golembase_updateEntities", []any{updates}, &receipts); err != nil {
		return nil, err
	}
	return receipts, nil
}

// GetEntityMetadata fetches owner and annotations for one entity key.
func (c *RPCClient) GetEntityMetadata(ctx context.Context, key string) (*EntityMetadata, error) {
	var meta EntityMetadata
	if err := c.call(ctx, "golembase_getEntityMetaData", []any{key}, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// watchFrame is one event frame pushed by the websocket subscription.
type watchFrame struct {
	Kind  string     `json:"kind"`
	Event WatchEvent `json:"event"`
}

// WatchLogs subscribes to entity lifecycle events for the given label and
// dispatches them to the callbacks until the context ends or stop is called.
func (c *RPCClient) WatchLogs(ctx context.Context, label string, callbacks WatchCallbacks) (func(), error) {
	if c.cfg.WSURL == "" {
		return nil, fmt.Errorf("golembase: ws_url is not set")
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.cfg.WSURL, nil)
	if err != nil {
		return nil, fmt.Errorf("golembase: dial websocket: %w", err)
	}
	c.ws = conn

	sub := rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  "golembase_subscribeEntityEvents",
		Params:  []any{label},
	}
	if err := conn.WriteJSON(sub); err != nil {
		conn.Close()
		return nil, fmt.Errorf("golembase: subscribe: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var frame watchFrame
			if err := conn.ReadJSON(&frame); err != nil {
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
					c.log.Warn("watch connection closed unexpectedly", zap.Error(err))
				}
				return
			}
			c.dispatch(frame, callbacks)
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	stop := func() {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
		<-done
	}
	return stop, nil
}

func (c *RPCClient) dispatch(frame watchFrame, callbacks WatchCallbacks) {
	c.log.Info("watch event", zap.String("kind", frame.Kind), zap.String("entity_key", frame.Event.Key))
	switch frame.Kind {
	case "create":
		if callbacks.OnCreate != nil {
			callbacks.OnCreate(frame.Event)
		}
	case "update":
		if callbacks.OnUpdate != nil {
			callbacks.OnUpdate(frame.Event)
		}
	case "delete":
		if callbacks.OnDelete != nil {
			callbacks.OnDelete(frame.Event)
		}
	case "extend":
		if callbacks.OnExtend != nil {
			callbacks.OnExtend(frame.Event)
		}
	}
}

// Close releases the HTTP and websocket connections.
func (c *RPCClient) Close() error {
	c.http.CloseIdleConnections()
	if c.ws != nil {
		return c.ws.Close()
	}
	return nil
}
