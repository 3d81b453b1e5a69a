// Package contact implements the validation state machine behind the
// site's contact form.
//
// # Overview
//
// A Form holds the five field values (name, email, phone, subject, message)
// and a per-field error flag with its message. Each field is checked by a
// Rule, an ordered list of Validators where the first failure wins.
//
// Three events drive the form:
//
//   - Blur: ValidateField re-checks one field and updates its flag.
//   - Input: the new value is stored and a raised flag is dropped at once,
//     without running the rule. The field is only known to be valid again
//     after the next blur or submit.
//   - Submit: Validate clears every flag, runs every rule and returns a
//     Result listing all failing fields in fixed field order.
//
// # Basic Usage
//
//	h := contact.NewHandler(
//	    contact.WithView(surface),
//	    contact.WithNamePref(pref.New("contactName", "", pref.WithStore(store))),
//	    contact.WithLogger(logger),
//	)
//	h.Restore(ctx)
//
//	h.Input(contact.FieldEmail, "oksana@example.com")
//	h.Blur(ctx, contact.FieldEmail)
//
//	if res := h.Submit(ctx); !res.Valid() {
//	    first, _ := res.First()
//	    fmt.Println(first.Field, first.Message)
//	}
//
// An accepted submission shows the success panel, logs the values, stores
// the trimmed name for the next visit and resets the form. A rejected one
// does none of that and scrolls to the first failing field.
package contact
