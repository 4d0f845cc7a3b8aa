package mqttvhal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/autoharness/cartool-core/internal/infrastructure/mqtt"
	"github.com/autoharness/cartool-core/internal/vhal"
	"github.com/autoharness/cartool-core/internal/vhal/wire"
)

// Logger defines the logging interface used by Client and Server.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Client is a vhal.Service reached over MQTT.
type Client struct {
	transport Transport
	prefix    string
	qos       byte
	timeout   time.Duration
	logger    Logger

	mu      sync.Mutex
	pending map[string]chan response
}

var _ vhal.Service = (*Client)(nil)

// NewClient creates a client for the service under prefix. Call Start
// before issuing requests.
func NewClient(t Transport, prefix string, qos byte, timeout time.Duration) *Client {
	return &Client{
		transport: t,
		prefix:    prefix,
		qos:       qos,
		timeout:   timeout,
		logger:    noopLogger{},
		pending:   make(map[string]chan response),
	}
}

// SetLogger sets the logger for the client.
func (c *Client) SetLogger(logger Logger) {
	c.logger = logger
}

// Start subscribes to the response topics.
func (c *Client) Start() error {
	if err := c.transport.Subscribe(mqtt.Topics{}.AllVehicleResponses(c.prefix), c.qos, c.handleResponse); err != nil {
		return fmt.Errorf("subscribing to vehicle responses: %w", err)
	}
	return nil
}

// Close unsubscribes. Requests still waiting time out.
func (c *Client) Close() error {
	return c.transport.Unsubscribe(mqtt.Topics{}.AllVehicleResponses(c.prefix))
}

func (c *Client) handleResponse(topic string, payload []byte) error {
	id := mqtt.RequestIDFromTopic(topic)

	c.mu.Lock()
	ch, ok := c.pending[id]
	delete(c.pending, id)
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("response for unknown request %q", id)
	}

	var resp response
	if err := cbor.Unmarshal(payload, &resp); err != nil {
		resp = response{Error: codeBadRequest, Message: "undecodable response: " + err.Error()}
	}
	ch <- resp
	return nil
}

// call publishes req and waits for its response.
func (c *Client) call(ctx context.Context, req request) (response, error) {
	payload, err := cbor.Marshal(req)
	if err != nil {
		return response{}, fmt.Errorf("encoding %s request: %w", req.Op, err)
	}

	id := uuid.NewString()
	ch := make(chan response, 1)
	c.mu.Lock()
	c.pending[id] = ch
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	if err := c.transport.Publish(mqtt.Topics{}.VehicleRequest(c.prefix, id), payload, c.qos, false); err != nil {
		return response{}, fmt.Errorf("%w: %w", vhal.ErrServiceUnavailable, err)
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case resp := <-ch:
		if resp.Error != "" {
			return response{}, remoteError(resp.Error, resp.Message)
		}
		return resp, nil
	case <-timer.C:
		c.logger.Warn("vehicle request timed out", "op", req.Op, "request_id", id, "timeout", c.timeout)
		return response{}, fmt.Errorf("%w: %s request timed out after %v", vhal.ErrServiceUnavailable, req.Op, c.timeout)
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
}

// ListDescriptors implements vhal.Service.
func (c *Client) ListDescriptors(ctx context.Context, ids []vhal.PropertyID) ([]vhal.Descriptor, error) {
	resp, err := c.call(ctx, request{Op: opList, IDs: ids})
	if err != nil {
		return nil, err
	}

	out := make([]vhal.Descriptor, 0, len(resp.Descriptors))
	for _, wd := range resp.Descriptors {
		d, err := wd.Descriptor()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRemote, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// IsAvailable implements vhal.Service.
func (c *Client) IsAvailable(ctx context.Context, id vhal.PropertyID, areaID int32) (bool, error) {
	resp, err := c.call(ctx, request{Op: opAvailable, ID: id, AreaID: areaID})
	if err != nil {
		return false, err
	}
	return resp.Available, nil
}

// Get implements vhal.Service.
func (c *Client) Get(ctx context.Context, id vhal.PropertyID, areaID int32, kind vhal.DataType) (vhal.Value, error) {
	resp, err := c.call(ctx, request{Op: opGet, ID: id, AreaID: areaID, Kind: kind})
	if err != nil {
		return nil, err
	}
	if len(resp.Value) == 0 {
		return nil, nil
	}

	v, err := wire.DecodeValue(kind, resp.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemote, err)
	}
	return v, nil
}

// Set implements vhal.Service.
func (c *Client) Set(ctx context.Context, id vhal.PropertyID, areaID int32, v vhal.Value) error {
	if v == nil {
		return errors.New("mqttvhal: nil value")
	}
	b, err := wire.EncodeValue(v)
	if err != nil {
		return err
	}
	_, err = c.call(ctx, request{Op: opSet, ID: id, AreaID: areaID, Kind: v.DataType(), Value: b})
	return err
}
