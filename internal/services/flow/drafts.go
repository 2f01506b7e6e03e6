package flow

import (
	"context"
	"encoding/json"

	"orusweb/internal/repositories"
)

// Snapshot is what survives between requests of a multi-step flow.
type Snapshot struct {
	Feature string            `json:"feature"`
	State   State             `json:"state"`
	Step    int               `json:"step"`
	Fields  map[string]string `json:"fields"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs map[string]string
	if len(m.errors) > 0 {
		errs = copyMap(m.errors)
	}
	return Snapshot{
		Feature: m.feature,
		State:   m.state,
		Step:    m.step,
		Fields:  copyMap(m.fields),
		Errors:  errs,
	}
}

// Restore puts a saved draft back. A draft saved mid-submit comes back ready.
func (m *Machine) Restore(s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.Step >= 0 && s.Step < len(m.steps) {
		m.step = s.Step
	}
	for k, v := range s.Fields {
		m.fields[k] = v
	}
	m.state = StateReady
}

// Drafts keeps multi-step drafts under the browser session and role.
type Drafts struct {
	store repositories.Store
}

func NewDrafts(store repositories.Store) *Drafts {
	return &Drafts{store: store}
}

func draftKey(sid, role, feature string) string {
	return repositories.Key(sid, role, "draft", feature)
}

func (d *Drafts) Load(ctx context.Context, sid, role string, m *Machine) error {
	raw, ok, err := d.store.Get(ctx, draftKey(sid, role, m.Feature()))
	if err != nil || !ok {
		return err
	}
	var s Snapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		// a draft we cannot read is as good as none
		return d.store.Delete(ctx, draftKey(sid, role, m.Feature()))
	}
	m.Restore(s)
	return nil
}

func (d *Drafts) Save(ctx context.Context, sid, role string, m *Machine) error {
	b, err := json.Marshal(m.Snapshot())
	if err != nil {
		return err
	}
	return d.store.Set(ctx, draftKey(sid, role, m.Feature()), string(b))
}

func (d *Drafts) Discard(ctx context.Context, sid, role, feature string) error {
	return d.store.Delete(ctx, draftKey(sid, role, feature))
}
