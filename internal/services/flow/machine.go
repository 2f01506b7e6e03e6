// Package flow is the state machine every feature form runs through:
//
//	loading -> ready -> submitting -> success | error -> ready
//
// Field values survive every transition. A failed submit toasts the first
// server message and leaves the form as the user typed it.
package flow

import (
	"context"
	"errors"
	"sync"

	apperr "orusweb/internal/errors"
	"orusweb/internal/metrics"
	"orusweb/internal/notify"
	"orusweb/internal/validation"
)

type State string

const (
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// Validate checks the draft before anything is sent.
type Validate func(fields map[string]string) error

type Machine struct {
	mu       sync.Mutex
	feature  string
	notifier notify.Notifier

	state   State
	steps   []string
	step    int
	fields  map[string]string
	errors  validation.Errors
	lastErr error
}

// New starts a machine in the loading state. Steps are optional and make
// the machine multi-step.
func New(feature string, n notify.Notifier, steps ...string) *Machine {
	return &Machine{
		feature:  feature,
		notifier: n,
		state:    StateLoading,
		steps:    steps,
		fields:   make(map[string]string),
	}
}

func (m *Machine) Feature() string { return m.feature }

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Load runs the initial fetch. The machine is ready afterwards even when the
// fetch failed, so the user can retry.
func (m *Machine) Load(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.state = StateLoading
	m.mu.Unlock()

	err := fn(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateReady
	m.lastErr = err
	if err != nil {
		m.toastLocked(err)
	}
	return err
}

// Edit sets one field and clears its message.
func (m *Machine) Edit(field, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fields[field] = value
	delete(m.errors, field)
	if m.state == StateSuccess || m.state == StateError {
		m.state = StateReady
	}
}

func (m *Machine) EditAll(values map[string]string) {
	for k, v := range values {
		m.Edit(k, v)
	}
}

func (m *Machine) Value(field string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fields[field]
}

func (m *Machine) Fields() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyMap(m.fields)
}

func (m *Machine) Errors() validation.Errors {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.errors) == 0 {
		return nil
	}
	return validation.Errors(copyMap(m.errors))
}

// Step returns the index and name of the current step.
func (m *Machine) Step() (int, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.steps) == 0 {
		return 0, ""
	}
	return m.step, m.steps[m.step]
}

func (m *Machine) LastStep() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step >= len(m.steps)-1
}

// Next validates the current step and advances.
func (m *Machine) Next(validate Validate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateSubmitting {
		return apperr.ErrBusy
	}
	if m.step >= len(m.steps)-1 {
		return apperr.ErrInvalidStep
	}
	if err := m.validateLocked(validate); err != nil {
		return err
	}
	m.step++
	return nil
}

func (m *Machine) Back() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateSubmitting {
		return apperr.ErrBusy
	}
	if m.step == 0 {
		return apperr.ErrInvalidStep
	}
	m.step--
	return nil
}

// Submit validates the draft and runs fn. A validation failure never calls
// fn. Only one submit runs at a time.
func Submit[T any](ctx context.Context, m *Machine, validate Validate, fn func(ctx context.Context, fields map[string]string) (T, error)) (T, error) {
	var zero T

	m.mu.Lock()
	if m.state == StateSubmitting {
		m.mu.Unlock()
		return zero, apperr.ErrBusy
	}
	if err := m.validateLocked(validate); err != nil {
		m.mu.Unlock()
		metrics.IncSubmission(m.feature, "invalid")
		return zero, err
	}
	m.state = StateSubmitting
	fields := copyMap(m.fields)
	m.mu.Unlock()

	out, err := fn(ctx, fields)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = err
	if err != nil {
		var fe validation.Errors
		if errors.As(err, &fe) {
			m.errors = fe
		}
		m.state = StateError
		m.toastLocked(err)
		m.state = StateReady
		metrics.IncSubmission(m.feature, "error")
		return zero, err
	}
	m.state = StateSuccess
	metrics.IncSubmission(m.feature, "success")
	return out, nil
}

func (m *Machine) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *Machine) validateLocked(validate Validate) error {
	m.errors = nil
	if validate == nil {
		return nil
	}
	err := validate(copyMap(m.fields))
	if err == nil {
		return nil
	}
	var fe validation.Errors
	if errors.As(err, &fe) {
		m.errors = fe
	}
	return err
}

// toastLocked shows the first message of err. Session errors were already
// reported by the client that saw the 401.
func (m *Machine) toastLocked(err error) {
	if m.notifier == nil || errors.Is(err, apperr.ErrSessionExpired) || errors.Is(err, apperr.ErrValidation) {
		return
	}
	m.notifier.Toast(notify.LevelError, apperr.FirstMessage(err))
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
