// Package globalcontexts attaches configured contexts to every tracked event
// that matches their filter.
package globalcontexts

import (
	"context"
	"fmt"

	"tracker/internal/config"
	"tracker/internal/logger"
	"tracker/pkg/cel"
	"tracker/pkg/metrics"
	"tracker/pkg/payload"
)

type entry struct {
	context payload.SelfDescribing
	filter  *cel.Filter
}

type Registry struct {
	entries []entry
	logger  logger.Logger
}

// New compiles every filter up front so a bad expression fails at startup
// rather than on the first event.
func New(cfgs []config.GlobalContextConfig, log logger.Logger) (*Registry, error) {
	r := &Registry{
		entries: make([]entry, 0, len(cfgs)),
		logger:  log,
	}
	if len(cfgs) == 0 {
		return r, nil
	}

	eval, err := cel.NewEvaluator()
	if err != nil {
		return nil, err
	}

	for i, c := range cfgs {
		sd, err := payload.NewSelfDescribing(c.Schema, c.Data)
		if err != nil {
			return nil, fmt.Errorf("global context %d: %w", i, err)
		}

		e := entry{context: sd}
		if c.Filter != "" {
			f, err := eval.CompileFilter(c.Filter)
			if err != nil {
				return nil, fmt.Errorf("global context %d (%s): %w", i, c.Schema, err)
			}
			e.filter = f
		}
		r.entries = append(r.entries, e)
	}

	return r, nil
}

func (r *Registry) Len() int {
	return len(r.entries)
}

// Apply returns the contexts that should be attached to the event described
// by in, in configured order. A filter that fails to evaluate is logged and
// its context skipped.
func (r *Registry) Apply(ctx context.Context, in cel.Input) []payload.SelfDescribing {
	out := make([]payload.SelfDescribing, 0, len(r.entries))

	for _, e := range r.entries {
		if e.filter != nil {
			ok, err := e.filter.Matches(ctx, in)
			if err != nil {
				r.logger.WarnwCtx(ctx, "Global context filter failed, skipping context",
					"context_schema", e.context.Schema(),
					"filter", e.filter.Expression(),
					"error", err,
				)
				continue
			}
			if !ok {
				continue
			}
		}

		metrics.IncGlobalContextApplied(e.context.Schema())
		out = append(out, e.context)
	}

	return out
}
