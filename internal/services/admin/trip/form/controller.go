package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/travelagency/admin/internal/platform/diagnostics"
	apperrors "github.com/travelagency/admin/internal/platform/errors"
	"github.com/travelagency/admin/internal/services/admin/identity"
	"github.com/travelagency/admin/internal/services/admin/trip/country"
)

// ErrSubmitInFlight rejects a submit or a field update while a submit is
// still running.
var ErrSubmitInFlight = errors.New("trip submission already in progress")

// Phase is the submission state.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// Outcome names the branch a submit attempt ended in.
type Outcome string

const (
	OutcomeSucceeded       Outcome = "succeeded"
	OutcomeInvalid         Outcome = "invalid"
	OutcomeUnauthenticated Outcome = "unauthenticated"
	OutcomeFailed          Outcome = "failed"
	OutcomeBusy            Outcome = "busy"
)

// Result describes one submit attempt.
type Result struct {
	Outcome Outcome
	Err     error
}

// IdentityResolver looks up the signed-in user.
type IdentityResolver interface {
	CurrentIdentity(ctx context.Context) (identity.Identity, error)
}

// Finalizer completes an accepted submission.
type Finalizer interface {
	Finalize(ctx context.Context, who identity.Identity, data FormData) error
}

// FinalizerFunc adapts a function to Finalizer.
type FinalizerFunc func(ctx context.Context, who identity.Identity, data FormData) error

// Finalize calls f.
func (f FinalizerFunc) Finalize(ctx context.Context, who identity.Identity, data FormData) error {
	return f(ctx, who, data)
}

// LogFinalizer records the submission in the log and nothing else.
type LogFinalizer struct {
	Logger *slog.Logger
}

// Finalize implements Finalizer.
func (f LogFinalizer) Finalize(ctx context.Context, who identity.Identity, data FormData) error {
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}
	args := append([]any{"user_id", who.ID, "user_name", who.Name, "user_email", who.Email}, data.LogAttrs()...)
	logger.InfoContext(ctx, "trip submitted", args...)
	return nil
}

// Snapshot is a read-only view of the controller for rendering.
type Snapshot struct {
	Data         FormData
	ErrorMessage string
	ErrorKey     string
	Loading      bool
	Phase        Phase
	// Last is the phase the most recent submit ended in, or idle.
	Last Phase
}

// Dependencies wires the controller's collaborators.
type Dependencies struct {
	Identity    IdentityResolver
	Finalizer   Finalizer
	Diagnostics diagnostics.Sink
}

// Controller owns one visit's form. It is safe for concurrent use.
type Controller struct {
	mu        sync.Mutex
	countries []country.Country
	data      FormData
	errMsg    string
	errKey    string
	loading   bool
	last      Phase

	identity  IdentityResolver
	finalizer Finalizer
	sink      diagnostics.Sink
}

// NewController starts a form over countries with the initial form data.
func NewController(countries []country.Country, deps Dependencies) *Controller {
	finalizer := deps.Finalizer
	if finalizer == nil {
		finalizer = LogFinalizer{}
	}
	sink := deps.Diagnostics
	if sink == nil {
		sink = diagnostics.LogSink{}
	}
	return &Controller{
		countries: append([]country.Country(nil), countries...),
		data:      NewFormData(countries),
		last:      PhaseIdle,
		identity:  deps.Identity,
		finalizer: finalizer,
		sink:      sink,
	}
}

// Countries returns the reference list this form was created with.
func (c *Controller) Countries() []country.Country {
	return c.countries
}

// Update replaces one field. A successful update clears the error message.
// Fields are frozen while a submit is in flight.
func (c *Controller) Update(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return ErrSubmitInFlight
	}
	next, err := c.data.With(field, value)
	if err != nil {
		return err
	}
	c.data = next
	c.errMsg, c.errKey = "", ""
	return nil
}

// Data returns the current form data.
func (c *Controller) Data() FormData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// Snapshot returns the state needed to render the form.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	phase := PhaseIdle
	if c.loading {
		phase = PhaseSubmitting
	}
	return Snapshot{
		Data:         c.data,
		ErrorMessage: c.errMsg,
		ErrorKey:     c.errKey,
		Loading:      c.loading,
		Phase:        phase,
		Last:         c.last,
	}
}

// Submit runs the submission state machine. Validation failures set the
// user-visible error message. Identity and finalize failures are reported to
// the diagnostic sink only. The loading flag is cleared on every path.
func (c *Controller) Submit(ctx context.Context) (result Result) {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return Result{Outcome: OutcomeBusy, Err: ErrSubmitInFlight}
	}
	c.loading = true
	c.errMsg, c.errKey = "", ""
	data := c.data
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading = false
		if result.Outcome == OutcomeSucceeded {
			c.last = PhaseSucceeded
		} else {
			c.last = PhaseFailed
		}
		c.mu.Unlock()
	}()

	if err := Validate(data); err != nil {
		c.mu.Lock()
		c.errMsg, c.errKey = err.Error(), apperrors.KeyOf(err)
		c.mu.Unlock()
		return Result{Outcome: OutcomeInvalid, Err: err}
	}

	who, err := c.resolveIdentity(ctx)
	if err != nil {
		c.sink.Record(ctx, diagnostics.Record{
			Level:   diagnostics.LevelError,
			Event:   "trip.submit.unauthenticated",
			Message: "user not authenticated",
			Err:     err,
		})
		return Result{Outcome: OutcomeUnauthenticated, Err: err}
	}

	if err := c.finalize(ctx, who, data); err != nil {
		c.sink.Record(ctx, diagnostics.Record{
			Level:   diagnostics.LevelError,
			Event:   "trip.submit.failed",
			Message: "error generating trip",
			Err:     err,
			Attrs:   map[string]string{"user_id": who.ID, "country": data.Country},
		})
		return Result{Outcome: OutcomeFailed, Err: err}
	}
	return Result{Outcome: OutcomeSucceeded}
}

func (c *Controller) resolveIdentity(ctx context.Context) (identity.Identity, error) {
	if c.identity == nil {
		return identity.Identity{}, apperrors.New(apperrors.CodeUnauthenticated, "identity resolver is not configured")
	}
	who, err := c.identity.CurrentIdentity(ctx)
	if err != nil {
		return identity.Identity{}, apperrors.Wrap(apperrors.CodeUnauthenticated, "resolve identity", err)
	}
	if who.Anonymous() {
		return identity.Identity{}, apperrors.New(apperrors.CodeUnauthenticated, "user not authenticated")
	}
	return who, nil
}

func (c *Controller) finalize(ctx context.Context, who identity.Identity, data FormData) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.New(apperrors.CodeSubmission, fmt.Sprintf("finalize panicked: %v", r))
		}
	}()
	if err := c.finalizer.Finalize(ctx, who, data); err != nil {
		return apperrors.Wrap(apperrors.CodeSubmission, "finalize trip", err)
	}
	return nil
}
