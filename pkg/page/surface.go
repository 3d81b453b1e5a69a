package page

import "github.com/tradition-dev/site/pkg/contact"

// Surface is an in-memory contact.View. It keeps the presentation state
// that Render needs to reproduce the page.
type Surface struct {
	errors  map[contact.FieldID]string
	success bool
	scroll  string
	resets  int
}

var _ contact.View = (*Surface)(nil)

// NewSurface creates a surface with no flags raised and the form visible.
func NewSurface() *Surface {
	return &Surface{errors: make(map[contact.FieldID]string)}
}

func (s *Surface) SetFieldError(id contact.FieldID, msg string) {
	s.errors[id] = msg
}

func (s *Surface) ClearFieldError(id contact.FieldID) {
	delete(s.errors, id)
}

// ShowSuccess reveals the success panel and hides the form.
func (s *Surface) ShowSuccess() {
	s.success = true
}

func (s *Surface) ScrollIntoView(target string) {
	s.scroll = target
}

func (s *Surface) ResetFields() {
	s.resets++
}

// FieldError returns the message shown under a field and whether the field
// is marked as failing.
func (s *Surface) FieldError(id contact.FieldID) (string, bool) {
	msg, ok := s.errors[id]
	return msg, ok
}

// SuccessVisible reports whether the success panel is shown.
func (s *Surface) SuccessVisible() bool {
	return s.success
}

// ScrollTarget returns the element id last brought into view, or "".
func (s *Surface) ScrollTarget() string {
	return s.scroll
}

// Resets returns how many times the form fields were reset.
func (s *Surface) Resets() int {
	return s.resets
}
