package listview

import "sync"

// Form is a create dialog: open state plus the draft being edited
type Form[D any] struct {
	mu      sync.Mutex
	open    bool
	draft   D
	initial func() D
}

// NewForm returns a closed form holding initial()
func NewForm[D any](initial func() D) *Form[D] {
	return &Form[D]{draft: initial(), initial: initial}
}

func (f *Form[D]) Open() {
	f.mu.Lock()
	f.open = true
	f.mu.Unlock()
}

// Close hides the form and keeps the draft
func (f *Form[D]) Close() {
	f.mu.Lock()
	f.open = false
	f.mu.Unlock()
}

func (f *Form[D]) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *Form[D]) Draft() D {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Form[D]) Set(d D) {
	f.mu.Lock()
	f.draft = d
	f.mu.Unlock()
}

// Submit hands the current draft to submit. On success the draft goes back
// to its initial shape and the form closes; on failure both are left as
// they were so the user can fix and resubmit.
func (f *Form[D]) Submit(submit func(D) error) error {
	if err := submit(f.Draft()); err != nil {
		return err
	}
	f.mu.Lock()
	f.draft = f.initial()
	f.open = false
	f.mu.Unlock()
	return nil
}
