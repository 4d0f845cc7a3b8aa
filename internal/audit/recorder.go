package audit

import (
	"context"

	"github.com/autoharness/cartool-core/internal/functions"
)

// Logger is the logging interface used by Recorder.
type Logger interface {
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Warn(string, ...any) {}

// Recorder writes every function invocation to a Repository.
// It satisfies functions.Recorder. A failed insert is logged and
// never fails the call being recorded.
type Recorder struct {
	repo   Repository
	logger Logger
}

// NewRecorder creates a recorder writing to repo.
func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo, logger: noopLogger{}}
}

// SetLogger sets the logger for insert failures.
func (r *Recorder) SetLogger(l Logger) {
	if l == nil {
		l = noopLogger{}
	}
	r.logger = l
}

// RecordInvocation stores inv. The insert ignores cancellation of ctx so
// calls aborted by their client are still audited.
func (r *Recorder) RecordInvocation(ctx context.Context, inv functions.Invocation) {
	e := EntryFromInvocation(inv)
	if err := r.repo.Create(context.WithoutCancel(ctx), &e); err != nil {
		r.logger.Warn("failed to record audit entry",
			"function", inv.Function,
			"property", inv.Property,
			"error", err,
		)
	}
}
