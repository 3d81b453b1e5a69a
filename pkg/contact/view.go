package contact

// SuccessTarget is the scroll target of the success panel.
const SuccessTarget = "formSuccess"

// View is the presentation side of the form. The Form reports error flag
// changes through it and the Handler reports submit outcomes.
//
// Calls are fire-and-forget: the form state is final before any of them
// is made, and nothing waits on the effect.
type View interface {
	// SetFieldError marks the field's container as in error and shows msg.
	SetFieldError(id FieldID, msg string)

	// ClearFieldError removes the error mark from the field's container.
	ClearFieldError(id FieldID)

	// ShowSuccess hides the form and shows the success panel.
	ShowSuccess()

	// ScrollIntoView draws attention to a field or to SuccessTarget.
	ScrollIntoView(target string)

	// ResetFields empties every input.
	ResetFields()
}

// NopView discards every presentation call.
type NopView struct{}

func (NopView) SetFieldError(FieldID, string) {}
func (NopView) ClearFieldError(FieldID)       {}
func (NopView) ShowSuccess()                  {}
func (NopView) ScrollIntoView(string)         {}
func (NopView) ResetFields()                  {}
