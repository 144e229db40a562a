package quizsession

import (
	"context"
	"time"
)

// Runner drives a controller with real wall-clock ticks. External
// signals (visibility losses, answer selections, manual submit) are
// queued through Send and serialized with the ticker onto the single
// event stream, so the controller never sees concurrent events.
type Runner struct {
	ctrl   *Controller
	events chan Event
}

func NewRunner(ctrl *Controller) *Runner {
	return &Runner{
		ctrl:   ctrl,
		events: make(chan Event, 16),
	}
}

// Send queues an external event. Safe to call from UI callbacks.
func (r *Runner) Send(ev Event) {
	r.events <- ev
}

// Run pumps events until the attempt reaches a terminal state or the
// context is cancelled. Cancellation before a terminal trigger leaves
// no trace: nothing is persisted until a terminal transition.
func (r *Runner) Run(ctx context.Context) State {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for !r.ctrl.State().Terminal() {
		select {
		case <-ctx.Done():
			return r.ctrl.State()
		case <-ticker.C:
			r.ctrl.Apply(ctx, Tick{})
		case ev := <-r.events:
			r.ctrl.Apply(ctx, ev)
		}
	}

	return r.ctrl.State()
}
