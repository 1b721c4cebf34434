package session

import (
	"sync"

	"github.com/m3rciful/filebot/app/model"
)

// WizardStep is the current prompt of the channel registration dialog.
type WizardStep int

const (
	StepChannelID WizardStep = iota
	StepChannelName
	StepInviteLink
)

// ChannelDraft is a partially collected channel registration.
type ChannelDraft struct {
	Step    WizardStep
	Channel model.Channel
}

// Wizard tracks per-admin channel registration dialogs in memory.
type Wizard struct {
	mu     sync.Mutex
	drafts map[int64]*ChannelDraft
}

// NewWizard returns an empty wizard tracker.
func NewWizard() *Wizard {
	return &Wizard{drafts: make(map[int64]*ChannelDraft)}
}

// Start opens a dialog at the first step, replacing any previous one.
func (w *Wizard) Start(userID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.drafts[userID] = &ChannelDraft{Step: StepChannelID}
}

// InProgress reports whether the user has an open dialog.
func (w *Wizard) InProgress(userID int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.drafts[userID]
	return ok
}

// Step returns the dialog's current step.
func (w *Wizard) Step(userID int64) (WizardStep, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	d, ok := w.drafts[userID]
	if !ok {
		return 0, false
	}
	return d.Step, true
}

// Advance records the answer for the current step and moves to the next.
// Completing the last step closes the dialog and returns the finished
// channel with done set to true.
func (w *Wizard) Advance(userID int64, answer string) (ch model.Channel, done, ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	d, exists := w.drafts[userID]
	if !exists {
		return model.Channel{}, false, false
	}

	switch d.Step {
	case StepChannelID:
		d.Channel.ChannelID = answer
		d.Step = StepChannelName
	case StepChannelName:
		d.Channel.Name = answer
		d.Step = StepInviteLink
	case StepInviteLink:
		d.Channel.InviteLink = answer
		delete(w.drafts, userID)
		return d.Channel, true, true
	}
	return d.Channel, false, true
}

// Cancel drops the dialog.
func (w *Wizard) Cancel(userID int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.drafts[userID]; !ok {
		return false
	}
	delete(w.drafts, userID)
	return true
}
