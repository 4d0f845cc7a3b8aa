package influxdb

import (
	"context"
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/autoharness/cartool-core/internal/functions"
)

// MeasurementInvocations is the measurement every function call is written to.
const MeasurementInvocations = "function_invocations"

// RecordInvocation writes one function call as a point. The write is
// non-blocking; points are batched and sent asynchronously.
//
// Client satisfies functions.Recorder.
func (c *Client) RecordInvocation(_ context.Context, inv functions.Invocation) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(invocationPoint(inv, time.Now()))
}

// invocationPoint tags a call by function, outcome and addressed property,
// so failures can be grouped per property and area.
func invocationPoint(inv functions.Invocation, at time.Time) *write.Point {
	tags := map[string]string{
		"function": inv.Function,
		"outcome":  inv.Outcome,
	}
	if inv.Property != "" {
		tags["property"] = inv.Property
		tags["area_id"] = strconv.FormatInt(int64(inv.AreaID), 10)
	}

	return write.NewPoint(
		MeasurementInvocations,
		tags,
		map[string]any{
			"duration_ms": float64(inv.Duration.Microseconds()) / 1000,
			"count":       int64(1),
		},
		at,
	)
}
