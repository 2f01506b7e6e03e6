// Package notify carries user-visible side effects (toasts and navigation)
// from services back to the browser.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// Notifier shows a toast.
type Notifier interface {
	Toast(level Level, message string)
}

// Navigator moves the browser to another route.
type Navigator interface {
	Navigate(route string)
}

type Toast struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// View is the serializable form of Effects.
type View struct {
	Toasts   []Toast `json:"toasts"`
	Redirect string  `json:"redirect,omitempty"`
}

// Effects records toasts and the last navigation of one request. It is both
// a Notifier and a Navigator.
type Effects struct {
	mu       sync.Mutex
	toasts   []Toast
	redirect string
}

func NewEffects() *Effects {
	return &Effects{}
}

func (e *Effects) Toast(level Level, message string) {
	if message == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.toasts = append(e.toasts, Toast{Level: level, Message: message})
}

func (e *Effects) Navigate(route string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.redirect = route
}

// Snapshot returns a copy safe to serialize.
func (e *Effects) Snapshot() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return View{Toasts: append([]Toast{}, e.toasts...), Redirect: e.redirect}
}

// Logged wraps a Notifier and logs every toast.
type Logged struct {
	Next   Notifier
	Logger *zap.Logger
}

func (l Logged) Toast(level Level, message string) {
	l.Logger.Debug("toast", zap.String("level", string(level)), zap.String("message", message))
	if l.Next != nil {
		l.Next.Toast(level, message)
	}
}
