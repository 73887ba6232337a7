package reconcile

import "go.uber.org/zap"

type options struct {
	logger      *zap.Logger
	concurrency int
	dryRun      bool
}

// Option configures a SyncDb.
type Option func(*options)

// WithLogger sets the logger used for per-action and per-pass messages.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithConcurrency sets how many paths are resolved in parallel.
// Values below 1 mean sequential resolution.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.concurrency = n
	}
}

// WithDryRun makes SyncFolder, SyncFile and ApplyPlan decide without writing.
func WithDryRun(dryRun bool) Option {
	return func(o *options) {
		o.dryRun = dryRun
	}
}

func defaultOptions() options {
	return options{
		logger:      zap.NewNop(),
		concurrency: 1,
	}
}
