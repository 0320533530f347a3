package dictionary

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/japaniel/accent/pkg/notify"
)

// ErrNotFound is returned when an id is not in the dictionary.
var ErrNotFound = errors.New("word not found")

// Editor is the glue around one open dictionary: the entry list, the entry
// being edited and whether it is new. Outcomes are reported to Notifier as
// well as returned. An Editor is not safe for concurrent use.
type Editor struct {
	Dict     UserDict
	State    WordState
	IsNew    bool
	Notifier notify.Notifier
	// NewID assigns ids to registered words.
	NewID func() string
}

// NewEditor opens d for editing, starting with a new empty entry.
func NewEditor(d UserDict, n notify.Notifier) *Editor {
	if d == nil {
		d = UserDict{}
	}
	return &Editor{
		Dict:     d,
		State:    NewWordState(),
		IsNew:    true,
		Notifier: n,
		NewID:    uuid.NewString,
	}
}

// New discards the current state and starts a new entry.
func (e *Editor) New() {
	e.State = NewWordState()
	e.IsNew = true
}

// Select opens the entry id.
func (e *Editor) Select(id string) error {
	w, ok := e.Dict[id]
	if !ok {
		return e.fail(fmt.Errorf("%w: %s", ErrNotFound, id), "failed to open word")
	}
	e.State = ToWordState(Element{UUID: id, Word: w})
	e.IsNew = false
	return nil
}

// Register stores the current state as a new entry.
func (e *Editor) Register() (string, error) {
	if err := e.State.Validate(); err != nil {
		return "", e.fail(err, "failed to register word")
	}
	id := e.NewID()
	e.State.UUID = id
	e.Dict[id] = e.State.Element().Word
	e.IsNew = false
	e.notify("registered "+e.State.Surface, notify.Success)
	return id, nil
}

// Update overwrites the selected entry with the current state.
func (e *Editor) Update() error {
	if err := e.State.Validate(); err != nil {
		return e.fail(err, "failed to update word")
	}
	if _, ok := e.Dict[e.State.UUID]; !ok || e.IsNew {
		return e.fail(fmt.Errorf("%w: %q", ErrNotFound, e.State.UUID), "failed to update word")
	}
	e.Dict[e.State.UUID] = e.State.Element().Word
	e.notify("updated "+e.State.Surface, notify.Success)
	return nil
}

// Delete removes the selected entry and starts a new one.
func (e *Editor) Delete() error {
	id := e.State.UUID
	if _, ok := e.Dict[id]; !ok || e.IsNew {
		return e.fail(fmt.Errorf("%w: %q", ErrNotFound, id), "failed to delete word")
	}
	delete(e.Dict, id)
	e.notify("deleted "+e.State.Surface, notify.Success)
	e.New()
	return nil
}

func (e *Editor) fail(err error, msg string) error {
	e.notify(fmt.Sprintf("%s: %v", msg, err), notify.Error)
	return err
}

func (e *Editor) notify(msg string, s notify.Severity) {
	if e.Notifier != nil {
		e.Notifier.Notify(msg, s)
	}
}
