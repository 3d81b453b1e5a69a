package contact

// Form holds the contact form values and the error flag of every field.
//
// A field's flag is set if and only if the last validation pass over that
// field failed, with one exception: Input drops the flag as soon as the
// user edits the field, before the value is checked again.
//
// Form is not safe for concurrent use; Handler serialises access.
type Form struct {
	rules  RuleSet
	view   View
	values Values
	errors map[FieldID]string
}

// NewForm creates an empty form checked by rules and presented by view.
// A nil rules uses DefaultRules; a nil view uses NopView.
func NewForm(rules RuleSet, view View) *Form {
	if rules == nil {
		rules = DefaultRules(RuleOptions{})
	}
	if view == nil {
		view = NopView{}
	}
	return &Form{
		rules:  rules,
		view:   view,
		errors: make(map[FieldID]string),
	}
}

// Values returns a copy of the current values.
func (f *Form) Values() Values {
	return f.values
}

// Value returns the current value of a single field.
func (f *Form) Value(id FieldID) string {
	return f.values.Get(id)
}

// SetValue stores a value without touching the error flag. It is meant for
// programmatic pre-fill, not for user edits.
func (f *Form) SetValue(id FieldID, value string) {
	f.values.Set(id, value)
}

// Input records a user edit. A raised error flag is cleared immediately and
// the rule is not run: the field looks clean until the next blur or submit,
// even if the new value would still fail.
func (f *Form) Input(id FieldID, value string) {
	f.values.Set(id, value)
	if _, flagged := f.errors[id]; flagged {
		f.clearError(id)
	}
}

// ValidateField re-checks one field, as on blur. The flag is cleared first
// and raised again only if the rule fails. Unknown ids are ignored.
func (f *Form) ValidateField(id FieldID) {
	if _, ok := ParseFieldID(string(id)); !ok {
		return
	}
	f.clearError(id)
	if msg, ok := f.rules.check(id, f.values.Get(id)); !ok {
		f.setError(id, msg)
	}
}

// Validate checks every field, as on submit. All flags are cleared first,
// then every rule runs even after an earlier one failed, so the Result
// reports all invalid fields at once.
func (f *Form) Validate() Result {
	f.ClearErrors()

	var failures []ValidationError
	for _, id := range Fields {
		msg, ok := f.rules.check(id, f.values.Get(id))
		if ok {
			continue
		}
		f.setError(id, msg)
		failures = append(failures, ValidationError{Field: id, Message: msg})
	}
	return newResult(failures)
}

// HasError reports whether the field's error flag is raised.
func (f *Form) HasError(id FieldID) bool {
	_, ok := f.errors[id]
	return ok
}

// ErrorMessage returns the message attached to a raised flag, or "".
func (f *Form) ErrorMessage(id FieldID) string {
	return f.errors[id]
}

// Errors returns a copy of the raised flags keyed by field.
func (f *Form) Errors() map[FieldID]string {
	out := make(map[FieldID]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// ClearErrors lowers every flag.
func (f *Form) ClearErrors() {
	for _, id := range Fields {
		f.clearError(id)
	}
}

// Reset empties every value and lowers every flag.
func (f *Form) Reset() {
	f.values = Values{}
	f.ClearErrors()
	f.view.ResetFields()
}

func (f *Form) setError(id FieldID, msg string) {
	f.errors[id] = msg
	f.view.SetFieldError(id, msg)
}

func (f *Form) clearError(id FieldID) {
	delete(f.errors, id)
	f.view.ClearFieldError(id)
}
