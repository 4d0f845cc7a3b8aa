package functions

import "context"

// Recorders fans an invocation out to several recorders in order.
type Recorders []Recorder

// RecordInvocation passes inv to every non-nil recorder.
func (rs Recorders) RecordInvocation(ctx context.Context, inv Invocation) {
	for _, r := range rs {
		if r != nil {
			r.RecordInvocation(ctx, inv)
		}
	}
}
