package functions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

type readArgs struct {
	PropertyName *string `json:"propertyName"`
	AreaID       *int32  `json:"areaId"`
}

func (a readArgs) validate() error {
	if a.PropertyName == nil {
		return fmt.Errorf("%w: propertyName is required", ErrInvalidArguments)
	}
	if a.AreaID == nil {
		return fmt.Errorf("%w: areaId is required", ErrInvalidArguments)
	}
	return nil
}

type writeArgs[T any] struct {
	PropertyName *string `json:"propertyName"`
	AreaID       *int32  `json:"areaId"`
	Value        *T      `json:"value"`
}

func (a writeArgs[T]) validate() error {
	if err := (readArgs{PropertyName: a.PropertyName, AreaID: a.AreaID}).validate(); err != nil {
		return err
	}
	if a.Value == nil {
		return fmt.Errorf("%w: value is required", ErrInvalidArguments)
	}
	return nil
}

// decodeArgs decodes a single JSON object into dst, rejecting unknown
// fields and trailing data.
func decodeArgs(raw json.RawMessage, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: unexpected data after arguments", ErrInvalidArguments)
	}
	return nil
}
