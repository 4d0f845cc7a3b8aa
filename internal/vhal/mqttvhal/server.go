package mqttvhal

import (
	"context"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/autoharness/cartool-core/internal/infrastructure/mqtt"
	"github.com/autoharness/cartool-core/internal/vhal"
	"github.com/autoharness/cartool-core/internal/vhal/wire"
)

// serveTimeout bounds how long one request may spend in the service.
const serveTimeout = 5 * time.Second

// Server answers vehicle requests published under prefix using service.
type Server struct {
	transport Transport
	prefix    string
	qos       byte
	service   vhal.Service
	logger    Logger
}

// NewServer creates a server. Call Start to begin answering.
func NewServer(t Transport, prefix string, qos byte, service vhal.Service) *Server {
	return &Server{
		transport: t,
		prefix:    prefix,
		qos:       qos,
		service:   service,
		logger:    noopLogger{},
	}
}

// SetLogger sets the logger for the server.
func (s *Server) SetLogger(logger Logger) {
	s.logger = logger
}

// Start subscribes to the request topics.
func (s *Server) Start() error {
	if err := s.transport.Subscribe(mqtt.Topics{}.AllVehicleRequests(s.prefix), s.qos, s.handleRequest); err != nil {
		return fmt.Errorf("subscribing to vehicle requests: %w", err)
	}
	s.logger.Info("vehicle service listening", "prefix", s.prefix)
	return nil
}

// Close stops answering requests.
func (s *Server) Close() error {
	return s.transport.Unsubscribe(mqtt.Topics{}.AllVehicleRequests(s.prefix))
}

func (s *Server) handleRequest(topic string, payload []byte) error {
	id := mqtt.RequestIDFromTopic(topic)

	var resp response
	var req request
	if err := cbor.Unmarshal(payload, &req); err != nil {
		resp = response{Error: codeBadRequest, Message: err.Error()}
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), serveTimeout)
		resp = s.serve(ctx, req)
		cancel()
	}

	if resp.Error != "" {
		s.logger.Debug("vehicle request failed", "request_id", id, "op", req.Op, "error", resp.Error, "message", resp.Message)
	}

	out, err := cbor.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	return s.transport.Publish(mqtt.Topics{}.VehicleResponse(s.prefix, id), out, s.qos, false)
}

func (s *Server) serve(ctx context.Context, req request) response {
	switch req.Op {
	case opList:
		descs, err := s.service.ListDescriptors(ctx, req.IDs)
		if err != nil {
			return failure(err)
		}
		out := make([]wire.Descriptor, 0, len(descs))
		for _, d := range descs {
			wd, err := wire.FromDescriptor(d)
			if err != nil {
				return failure(err)
			}
			out = append(out, wd)
		}
		return response{Descriptors: out}

	case opAvailable:
		ok, err := s.service.IsAvailable(ctx, req.ID, req.AreaID)
		if err != nil {
			return failure(err)
		}
		return response{Available: ok}

	case opGet:
		v, err := s.service.Get(ctx, req.ID, req.AreaID, req.Kind)
		if err != nil {
			return failure(err)
		}
		if v == nil {
			return response{}
		}
		b, err := wire.EncodeValue(v)
		if err != nil {
			return failure(err)
		}
		return response{Value: b}

	case opSet:
		v, err := wire.DecodeValue(req.Kind, req.Value)
		if err != nil {
			return response{Error: codeBadRequest, Message: err.Error()}
		}
		if err := s.service.Set(ctx, req.ID, req.AreaID, v); err != nil {
			return failure(err)
		}
		return response{}

	default:
		return response{Error: codeBadRequest, Message: fmt.Sprintf("unknown op %q", req.Op)}
	}
}

func failure(err error) response {
	return response{Error: errorCode(err), Message: err.Error()}
}
