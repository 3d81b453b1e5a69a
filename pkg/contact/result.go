package contact

import (
	"errors"
	"sort"
)

// Result is the outcome of one validation pass over the whole form.
// Failures are kept in field order, whatever order they were found in.
type Result struct {
	failures []ValidationError
}

func newResult(failures []ValidationError) Result {
	sorted := make([]ValidationError, len(failures))
	copy(sorted, failures)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Field.index() < sorted[j].Field.index()
	})
	return Result{failures: sorted}
}

// Valid reports whether every field passed.
func (r Result) Valid() bool {
	return len(r.failures) == 0
}

// Failures returns a copy of the failing fields in field order.
func (r Result) Failures() []ValidationError {
	out := make([]ValidationError, len(r.failures))
	copy(out, r.failures)
	return out
}

// First returns the failure that should receive attention: the earliest
// failing field in form order.
func (r Result) First() (ValidationError, bool) {
	if len(r.failures) == 0 {
		return ValidationError{}, false
	}
	return r.failures[0], true
}

// Has reports whether id failed.
func (r Result) Has(id FieldID) bool {
	_, ok := r.lookup(id)
	return ok
}

// Message returns the failure message for id, or "" if it passed.
func (r Result) Message(id FieldID) string {
	ve, _ := r.lookup(id)
	return ve.Message
}

// Fields returns the failing field ids in field order.
func (r Result) Fields() []FieldID {
	ids := make([]FieldID, 0, len(r.failures))
	for _, f := range r.failures {
		ids = append(ids, f.Field)
	}
	return ids
}

// Err joins the failures into a single error, or returns nil when valid.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	errs := make([]error, 0, len(r.failures))
	for _, f := range r.failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

func (r Result) lookup(id FieldID) (ValidationError, bool) {
	for _, f := range r.failures {
		if f.Field == id {
			return f, true
		}
	}
	return ValidationError{}, false
}
