package mqttvhal

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/autoharness/cartool-core/internal/infrastructure/mqtt"
	"github.com/autoharness/cartool-core/internal/vhal"
	"github.com/autoharness/cartool-core/internal/vhal/wire"
)

// ErrRemote is returned when the far side reports a failure that maps to no
// vhal sentinel.
var ErrRemote = errors.New("mqttvhal: remote service error")

// Transport is the part of the MQTT client the protocol needs.
// *mqtt.Client satisfies it.
type Transport interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Unsubscribe(topic string) error
}

var _ Transport = (*mqtt.Client)(nil)

// Operations.
const (
	opList      = "list"
	opAvailable = "available"
	opGet       = "get"
	opSet       = "set"
)

// request is the CBOR body published on the request topic.
type request struct {
	Op     string            `cbor:"op"`
	IDs    []vhal.PropertyID `cbor:"ids,omitempty"`
	ID     vhal.PropertyID   `cbor:"id,omitempty"`
	AreaID int32             `cbor:"area_id"`
	Kind   vhal.DataType     `cbor:"kind,omitempty"`
	Value  cbor.RawMessage   `cbor:"value,omitempty"`
}

// response is the CBOR body published on the response topic. A missing
// Value on a get reply means the vehicle has no value.
type response struct {
	Error       string            `cbor:"error,omitempty"`
	Message     string            `cbor:"message,omitempty"`
	Descriptors []wire.Descriptor `cbor:"descriptors,omitempty"`
	Available   bool              `cbor:"available,omitempty"`
	Value       cbor.RawMessage   `cbor:"value,omitempty"`
}

// Error codes carried in response.Error.
const (
	codeUnknownProperty = "unknown_property"
	codeWriteRejected   = "write_rejected"
	codeReadRejected    = "read_rejected"
	codeTypeMismatch    = "type_mismatch"
	codeBadRequest      = "bad_request"
	codeServiceError    = "service_error"
)

var errorCodes = []struct {
	code string
	err  error
}{
	{codeUnknownProperty, vhal.ErrUnknownProperty},
	{codeWriteRejected, vhal.ErrWriteRejected},
	{codeReadRejected, vhal.ErrReadRejected},
	{codeTypeMismatch, vhal.ErrTypeMismatch},
}

// errorCode classifies a service error for the wire.
func errorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return codeServiceError
}

// remoteError rebuilds a local error from a response's error fields.
func remoteError(code, message string) error {
	for _, ec := range errorCodes {
		if ec.code == code {
			return fmt.Errorf("remote: %s: %w", message, ec.err)
		}
	}
	return fmt.Errorf("%w: %s: %s", ErrRemote, code, message)
}
