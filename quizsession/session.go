// Package quizsession is the client-resident controller for one proctored
// quiz attempt. The controller is a state machine fed by a single event
// stream (timer ticks, visibility losses, answer selections, manual
// submit); it performs no I/O and reads no clock of its own, so tests can
// drive a whole attempt without waiting on wall time. The terminal
// transition is the only point at which the submission boundary is
// crossed, and it fires at most once per attempt.
package quizsession

import (
	"context"
	"fmt"

	"github.com/brightpath-edu/academy_api/dto"
	"github.com/brightpath-edu/academy_api/model"
	"github.com/brightpath-edu/academy_api/shared"
)

type State int

const (
	StateIdle State = iota
	StateArmed
	StateActive
	StateSubmitted
	StateExpired
	StateForfeited
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateActive:
		return "active"
	case StateSubmitted:
		return "submitted"
	case StateExpired:
		return "expired"
	case StateForfeited:
		return "forfeited"
	}
	return "unknown"
}

// Terminal reports whether the attempt is over. Every event is a no-op
// from a terminal state; the attempt is immutable once it ends.
func (s State) Terminal() bool {
	return s == StateSubmitted || s == StateExpired || s == StateForfeited
}

// Event is one input to the controller. All suspension happens outside
// the controller: whoever owns the attempt queues events in.
type Event interface{ isEvent() }

// Tick is one elapsed wall-clock second while the attempt is active.
type Tick struct{}

// VisibilityLost is one loss of foreground visibility (tab switch,
// window minimise) reported by the proctoring signal.
type VisibilityLost struct{}

// AnswerSelected records or overwrites the choice for one question.
type AnswerSelected struct {
	QuestionID string
	Choice     string
}

// ManualSubmit is the learner explicitly ending the attempt.
type ManualSubmit struct{}

func (Tick) isEvent()           {}
func (VisibilityLost) isEvent() {}
func (AnswerSelected) isEvent() {}
func (ManualSubmit) isEvent()   {}

// Submission is what crosses the boundary at the terminal transition.
type Submission struct {
	LessonID   string
	Answers    map[string]string
	ForcedZero bool
}

// Submitter delivers the one terminal submission of an attempt.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) (*dto.SubmitQuizResponse, error)
}

// Controller owns the lifecycle of one quiz attempt. Not safe for
// concurrent use: the session runs single-threaded and event-driven,
// the same way the quiz UI does.
type Controller struct {
	lessonID         string
	state            State
	remainingSeconds int
	violations       int
	answers          map[string]string

	submitter Submitter
	result    *dto.SubmitQuizResponse
	submitErr error

	// onWarning fires for each visibility loss below the forfeit
	// threshold. Optional.
	onWarning func(violations, limit int)
}

// New builds an idle controller. Everything the machine needs arrives
// here explicitly; nothing is read from ambient context later.
func New(submitter Submitter, opts ...Option) *Controller {
	c := &Controller{
		state:     StateIdle,
		submitter: submitter,
		answers:   map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Option func(*Controller)

func WithWarningFunc(fn func(violations, limit int)) Option {
	return func(c *Controller) { c.onWarning = fn }
}

// Arm loads the lesson's quiz configuration and resets attempt state.
// A missing or non-positive time limit falls back to the engine default.
func (c *Controller) Arm(lesson *model.Lesson) {
	if c.state.Terminal() || c.state == StateActive {
		return
	}

	minutes := lesson.TimeLimitMinutes
	if minutes <= 0 {
		minutes = shared.DefaultTimeLimitMinutes
	}

	c.lessonID = lesson.ID
	c.remainingSeconds = minutes * 60
	c.violations = 0
	c.answers = map[string]string{}
	c.state = StateArmed
}

// Begin starts the countdown.
func (c *Controller) Begin() {
	if c.state != StateArmed {
		return
	}
	c.state = StateActive
}

// Start arms and begins in one step.
func (c *Controller) Start(lesson *model.Lesson) {
	c.Arm(lesson)
	c.Begin()
}

// Reset returns a terminal controller to idle for the next lesson.
func (c *Controller) Reset() {
	if !c.state.Terminal() {
		return
	}
	c.state = StateIdle
	c.lessonID = ""
	c.remainingSeconds = 0
	c.violations = 0
	c.answers = map[string]string{}
	c.result = nil
	c.submitErr = nil
}

// Apply feeds one event through the transition function. Events outside
// the Active state are discarded, which is what makes the terminal
// triggers mutually exclusive: whichever fires first wins and every
// later trigger sees a terminal state.
func (c *Controller) Apply(ctx context.Context, ev Event) {
	if c.state != StateActive {
		return
	}

	switch e := ev.(type) {
	case Tick:
		c.remainingSeconds--
		if c.remainingSeconds <= 0 {
			c.remainingSeconds = 0
			c.expire(ctx)
		}
	case VisibilityLost:
		c.violations++
		if c.violations >= shared.VisibilityViolationLimit {
			c.forfeit(ctx)
		} else if c.onWarning != nil {
			c.onWarning(c.violations, shared.VisibilityViolationLimit)
		}
	case AnswerSelected:
		// Last choice wins.
		c.answers[e.QuestionID] = e.Choice
	case ManualSubmit:
		c.state = StateSubmitted
		c.submit(ctx, Submission{LessonID: c.lessonID, Answers: c.copyAnswers()})
	}
}

// expire ends the attempt on timer exhaustion, submitting whatever was
// recorded. With nothing recorded it degrades to a forced zero so an
// empty payload can never be misgraded.
func (c *Controller) expire(ctx context.Context) {
	c.state = StateExpired
	sub := Submission{LessonID: c.lessonID, Answers: c.copyAnswers()}
	if len(sub.Answers) == 0 {
		sub.ForcedZero = true
	}
	c.submit(ctx, sub)
}

// forfeit ends the attempt on the proctoring threshold with zero credit
// regardless of recorded answers.
func (c *Controller) forfeit(ctx context.Context) {
	c.state = StateForfeited
	c.submit(ctx, Submission{LessonID: c.lessonID, Answers: map[string]string{}, ForcedZero: true})
}

func (c *Controller) submit(ctx context.Context, sub Submission) {
	c.result, c.submitErr = c.submitter.Submit(ctx, sub)
}

func (c *Controller) copyAnswers() map[string]string {
	out := make(map[string]string, len(c.answers))
	for k, v := range c.answers {
		out[k] = v
	}
	return out
}

func (c *Controller) State() State                    { return c.state }
func (c *Controller) RemainingSeconds() int           { return c.remainingSeconds }
func (c *Controller) Violations() int                 { return c.violations }
func (c *Controller) Result() *dto.SubmitQuizResponse { return c.result }
func (c *Controller) SubmitErr() error                { return c.submitErr }

// Message is the single human-readable line shown for the attempt's
// terminal state. Internal error kinds are never surfaced here; a
// failed submission prompts a retry instead.
func (c *Controller) Message() string {
	if c.submitErr != nil {
		return "We couldn't save your quiz. Check your connection and try again."
	}

	switch c.state {
	case StateSubmitted:
		if c.result != nil && c.result.Passed {
			return fmt.Sprintf("You passed with %d/%d.", c.result.Score, c.result.Total)
		}
		if c.result != nil {
			return fmt.Sprintf("You scored %d/%d. You can review the lesson and move on.", c.result.Score, c.result.Total)
		}
		return "Quiz submitted."
	case StateExpired:
		return "Time is up. Your recorded answers were submitted."
	case StateForfeited:
		return "The quiz was ended because you left the page too many times."
	}
	return ""
}
