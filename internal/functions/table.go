package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/autoharness/cartool-core/internal/property"
)

// Logger defines the logging interface used by the Table.
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

// Outcome values recorded for each invocation.
const (
	OutcomeSuccess       = "success"
	OutcomeNotAuthorized = "not_authorized"
	OutcomeNotAvailable  = "not_available"
	OutcomeInvalid       = "invalid_arguments"
	OutcomeError         = "error"
)

// Invocation describes one completed function call.
type Invocation struct {
	Function string
	Property string
	AreaID   int32
	Outcome  string
	Duration time.Duration
}

// Recorder receives a record of every invocation.
type Recorder interface {
	RecordInvocation(ctx context.Context, inv Invocation)
}

type invokeFunc func(ctx context.Context, repo *property.Repository, args json.RawMessage) (any, error)

type function struct {
	schema Schema
	invoke invokeFunc
}

// Table dispatches function calls to a property repository.
type Table struct {
	repo     *property.Repository
	funcs    []function
	byName   map[string]int
	recorder Recorder
	logger   Logger
}

// NewTable builds the function table over repo.
func NewTable(repo *property.Repository) *Table {
	t := &Table{
		repo:   repo,
		logger: noopLogger{},
	}

	t.add(Schema{
		Name:        "getPropertyList",
		Description: propertyListDescription,
		Parameters:  []Parameter{},
		Returns:     "A JSON string representing a list of property profiles for supported vehicle properties.",
	}, func(ctx context.Context, repo *property.Repository, args json.RawMessage) (any, error) {
		if err := decodeArgs(args, &struct{}{}); err != nil {
			return nil, err
		}
		return repo.PropertyList(ctx)
	})

	addAccessorsFor(t, "String", "string", "", "a string",
		"The current string value, or an empty string if the property has no value.",
		(*property.Repository).GetString, (*property.Repository).SetString)
	addAccessorsFor(t, "Boolean", "boolean", "", "a boolean",
		"The current boolean value of the property.",
		(*property.Repository).GetBool, (*property.Repository).SetBool)
	addAccessorsFor(t, "Int", "integer", "", "an integer",
		"The current integer value of the property.",
		(*property.Repository).GetInt32, (*property.Repository).SetInt32)
	addAccessorsFor(t, "IntArray", "array", "integer", "an integer array",
		"The current integer array value of the property.",
		(*property.Repository).GetInt32Array, (*property.Repository).SetInt32Array)
	addAccessorsFor(t, "Long", "integer", "", "a long",
		"The current long value, or 0 if the property has no value.",
		(*property.Repository).GetInt64, (*property.Repository).SetInt64)
	addAccessorsFor(t, "LongArray", "array", "integer", "a long array",
		"The current long array value, or an empty array if the property has no value.",
		(*property.Repository).GetInt64Array, (*property.Repository).SetInt64Array)
	addAccessorsFor(t, "Float", "number", "", "a float",
		"The current float value of the property.",
		(*property.Repository).GetFloat, (*property.Repository).SetFloat)
	addAccessorsFor(t, "FloatArray", "array", "number", "a float array",
		"The current float array value, or an empty array if the property has no value.",
		(*property.Repository).GetFloatArray, (*property.Repository).SetFloatArray)

	return t
}

// SetLogger sets the logger for the table.
func (t *Table) SetLogger(logger Logger) {
	t.logger = logger
}

// SetRecorder sets the invocation recorder. A nil recorder disables recording.
func (t *Table) SetRecorder(r Recorder) {
	t.recorder = r
}

// Schemas returns the schema of every function in table order.
func (t *Table) Schemas() []Schema {
	out := make([]Schema, len(t.funcs))
	for i, f := range t.funcs {
		out[i] = f.schema
	}
	return out
}

// Lookup returns the schema of the named function.
func (t *Table) Lookup(name string) (Schema, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Schema{}, false
	}
	return t.funcs[i].schema, true
}

// Invoke calls the named function with a JSON object of arguments.
// An empty args value is treated as {}.
func (t *Table) Invoke(ctx context.Context, name string, args json.RawMessage) (any, error) {
	i, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	if len(bytes.TrimSpace(args)) == 0 {
		args = json.RawMessage("{}")
	}

	start := time.Now()
	result, err := t.funcs[i].invoke(ctx, t.repo, args)
	inv := Invocation{
		Function: name,
		Outcome:  outcome(err),
		Duration: time.Since(start),
	}
	inv.Property, inv.AreaID = target(args)

	t.logger.Debug("function invoked",
		"function", name,
		"property", inv.Property,
		"area_id", inv.AreaID,
		"outcome", inv.Outcome,
		"duration", inv.Duration,
	)
	if t.recorder != nil {
		t.recorder.RecordInvocation(ctx, inv)
	}

	return result, err
}

func (t *Table) add(s Schema, invoke invokeFunc) {
	s.Version = Version
	s.Category = Category
	if t.byName == nil {
		t.byName = make(map[string]int)
	}
	t.byName[s.Name] = len(t.funcs)
	t.funcs = append(t.funcs, function{schema: s, invoke: invoke})
}

// addAccessorsFor registers the get and set function of one value kind.
func addAccessorsFor[T any](
	t *Table,
	kind, valueType, items, article, returns string,
	get func(*property.Repository, context.Context, string, int32) (T, error),
	set func(*property.Repository, context.Context, string, int32, T) (string, error),
) {
	t.add(Schema{
		Name:        "get" + kind + "Property",
		Description: fmt.Sprintf("Gets the current value of %s type vehicle property.", article),
		Parameters:  readParams(),
		Returns:     returns,
	}, func(ctx context.Context, repo *property.Repository, raw json.RawMessage) (any, error) {
		var args readArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		if err := args.validate(); err != nil {
			return nil, err
		}
		return get(repo, ctx, *args.PropertyName, *args.AreaID)
	})

	t.add(Schema{
		Name:        "set" + kind + "Property",
		Description: fmt.Sprintf("Sets the value for %s type vehicle property.", article),
		Parameters:  writeParams(valueType, items, "The new value to set, as "+article+"."),
		Returns:     `"success" when the value was written.`,
		Writes:      true,
	}, func(ctx context.Context, repo *property.Repository, raw json.RawMessage) (any, error) {
		var args writeArgs[T]
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		if err := args.validate(); err != nil {
			return nil, err
		}
		return set(repo, ctx, *args.PropertyName, *args.AreaID, *args.Value)
	})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, property.ErrNotAuthorized):
		return OutcomeNotAuthorized
	case errors.Is(err, property.ErrNotAvailable):
		return OutcomeNotAvailable
	case errors.Is(err, ErrInvalidArguments):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

// target extracts the addressed property for logging. Malformed arguments
// yield zero values.
func target(args json.RawMessage) (string, int32) {
	var t struct {
		PropertyName string `json:"propertyName"`
		AreaID       int32  `json:"areaId"`
	}
	_ = json.Unmarshal(args, &t)
	return t.PropertyName, t.AreaID
}
