package domain

import (
	"time"

	"github.com/google/uuid"
)

type Step string

const (
	StepBooking      Step = "booking"
	StepCalendar     Step = "calendar"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

// Recorder persists a confirmed booking. The workflow only moves on when it succeeds.
type Recorder func(ConfirmedBooking) error

// Workflow walks one draft through booking → calendar → payment → confirmation.
// Refused transitions are no-ops reported as false.
type Workflow struct {
	step  Step
	draft *Draft
	newID func() uuid.UUID
	now   func() time.Time
}

type WorkflowOption func(*Workflow)

func WithClock(now func() time.Time) WorkflowOption {
	return func(w *Workflow) { w.now = now }
}

func WithIDGenerator(newID func() uuid.UUID) WorkflowOption {
	return func(w *Workflow) { w.newID = newID }
}

func NewWorkflow(opts ...WorkflowOption) *Workflow {
	w := &Workflow{
		step:  StepBooking,
		draft: NewDraft(),
		newID: func() uuid.UUID { return uuid.Must(uuid.NewV7()) },
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) Step() Step { return w.step }

// Draft returns the live draft owned by this workflow.
func (w *Workflow) Draft() *Draft { return w.draft }

func (w *Workflow) CanAdvance() bool {
	switch w.step {
	case StepBooking:
		return w.draft.ReadyForCalendar()
	case StepCalendar:
		return true
	}
	return false
}

func (w *Workflow) Advance() bool {
	if !w.CanAdvance() {
		return false
	}
	switch w.step {
	case StepBooking:
		w.step = StepCalendar
	case StepCalendar:
		w.step = StepPayment
	}
	return true
}

// Back keeps every field entered so far.
func (w *Workflow) Back() bool {
	switch w.step {
	case StepCalendar:
		w.step = StepBooking
	case StepPayment:
		w.step = StepCalendar
	default:
		return false
	}
	return true
}

// Reset clears the draft while staying on the booking step.
func (w *Workflow) Reset() bool {
	if w.step != StepBooking {
		return false
	}
	w.draft = NewDraft()
	return true
}

func (w *Workflow) CanConfirm() bool {
	return w.step == StepPayment && w.draft.Customer().Complete()
}

// Confirm snapshots the draft, hands it to record and, once recorded, moves to
// the confirmation step with a fresh draft. A refused guard returns ok=false
// and a nil error; a record failure leaves the workflow untouched.
func (w *Workflow) Confirm(record Recorder) (ConfirmedBooking, bool, error) {
	if !w.CanConfirm() {
		return ConfirmedBooking{}, false, nil
	}
	booking := NewConfirmedBooking(w.newID(), w.now().UTC(), w.draft.Snapshot())
	if record != nil {
		if err := record(booking); err != nil {
			return ConfirmedBooking{}, false, err
		}
	}
	w.draft = NewDraft()
	w.step = StepConfirmation
	return booking, true, nil
}

func (w *Workflow) MakeAnotherBooking() bool {
	if w.step != StepConfirmation {
		return false
	}
	w.draft = NewDraft()
	w.step = StepBooking
	return true
}
