// Package autosave drives the eventually-consistent background save: every
// answer mutation is written to the local session cache immediately, and a
// debounced remote save ships the latest full snapshot once typing pauses.
package autosave

import (
	"sync"
	"time"

	"github.com/mizuki/greenplate/session"
)

// DefaultDelay is the quiet period after the last mutation before the
// remote save fires.
const DefaultDelay = 700 * time.Millisecond

// Status is the observable state of the most recent remote save attempt.
type Status int

const (
	StatusIdle Status = iota
	StatusSaving
	StatusSaved
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSaving:
		return "saving"
	case StatusSaved:
		return "saved"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Notification is pushed on every status change. Issues carries the courtesy
// issue count the save endpoint returns alongside a successful upsert.
type Notification struct {
	Status Status
	Issues int
	Err    error
}

// SaveFunc ships a full answers snapshot to the remote case record and
// returns the server's courtesy issue count.
type SaveFunc func(caseID string, answers map[string]string) (int, error)

// Driver owns the debounce timer and the sync status for one case. Only one
// timer is live at a time: each Record cancels the previous one, so a burst
// of edits coalesces into a single remote call carrying the final snapshot.
type Driver struct {
	mu      sync.Mutex
	caseID  string
	store   *session.Store
	save    SaveFunc
	notify  func(Notification)
	delay   time.Duration
	clock   Clock
	timer   Timer
	status  Status
	answers map[string]string
	closed  bool
}

// New creates a driver for caseID. notify may be nil.
func New(caseID string, store *session.Store, save SaveFunc, notify func(Notification)) *Driver {
	return &Driver{
		caseID: caseID,
		store:  store,
		save:   save,
		notify: notify,
		delay:  DefaultDelay,
		clock:  SystemClock(),
	}
}

// SetDelay overrides the debounce quiet period.
func (d *Driver) SetDelay(delay time.Duration) { d.delay = delay }

// SetClock swaps the scheduling clock; tests use a manual clock.
func (d *Driver) SetClock(c Clock) { d.clock = c }

// Status returns the state of the most recent save attempt.
func (d *Driver) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Record notes a new answers snapshot. The local cache write happens
// synchronously and unconditionally, even while a remote save is pending;
// the remote save is rescheduled to fire after the quiet period.
func (d *Driver) Record(answers map[string]string) error {
	snap := make(map[string]string, len(answers))
	for k, v := range answers {
		snap[k] = v
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.answers = snap
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.delay, d.fire)
	store := d.store
	caseID := d.caseID
	now := d.clock.Now()
	d.mu.Unlock()

	if store == nil {
		return nil
	}
	return store.Save(session.Snapshot{CaseID: caseID, Answers: snap, UpdatedAt: now})
}

func (d *Driver) fire() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	answers := d.answers
	caseID := d.caseID
	d.status = StatusSaving
	d.mu.Unlock()

	d.post(Notification{Status: StatusSaving})

	issues, err := d.save(caseID, answers)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if err != nil {
		d.status = StatusError
	} else {
		d.status = StatusSaved
	}
	d.mu.Unlock()

	if err != nil {
		d.post(Notification{Status: StatusError, Err: err})
		return
	}
	d.post(Notification{Status: StatusSaved, Issues: issues})
}

func (d *Driver) post(n Notification) {
	if d.notify != nil {
		d.notify(n)
	}
}

// Close cancels any pending save and drops the results of an in-flight one.
// No remote call is made after Close returns unless it was already running.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
