package contact

// FieldID identifies one input of the contact form.
type FieldID string

const (
	FieldName    FieldID = "name"
	FieldEmail   FieldID = "email"
	FieldPhone   FieldID = "phone"
	FieldSubject FieldID = "subject"
	FieldMessage FieldID = "message"
)

// Fields lists every field in form order. The order decides which failing
// field receives attention after a rejected submit.
var Fields = []FieldID{FieldName, FieldEmail, FieldPhone, FieldSubject, FieldMessage}

// ParseFieldID maps an element id to a FieldID.
func ParseFieldID(s string) (FieldID, bool) {
	for _, id := range Fields {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

// String returns the element id of the field.
func (id FieldID) String() string {
	return string(id)
}

// index returns the position of id in Fields, or len(Fields) if unknown.
func (id FieldID) index() int {
	for i, f := range Fields {
		if f == id {
			return i
		}
	}
	return len(Fields)
}

// Values holds the raw string value of every field.
type Values struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Get returns the value of a single field.
func (v Values) Get(id FieldID) string {
	switch id {
	case FieldName:
		return v.Name
	case FieldEmail:
		return v.Email
	case FieldPhone:
		return v.Phone
	case FieldSubject:
		return v.Subject
	case FieldMessage:
		return v.Message
	default:
		return ""
	}
}

// Set updates a single field. Unknown ids are ignored.
func (v *Values) Set(id FieldID, value string) {
	switch id {
	case FieldName:
		v.Name = value
	case FieldEmail:
		v.Email = value
	case FieldPhone:
		v.Phone = value
	case FieldSubject:
		v.Subject = value
	case FieldMessage:
		v.Message = value
	}
}

// Trimmed returns the values as they are reported after a successful
// submit. Subject comes from a fixed option list and is kept verbatim.
func (v Values) Trimmed() Values {
	return Values{
		Name:    trimSpace(v.Name),
		Email:   trimSpace(v.Email),
		Phone:   trimSpace(v.Phone),
		Subject: v.Subject,
		Message: trimSpace(v.Message),
	}
}
