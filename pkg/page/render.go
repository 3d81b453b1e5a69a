package page

import (
	"github.com/tradition-dev/site/pkg/contact"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Subject is one choice of the subject select.
type Subject struct {
	Value string
	Label string
}

// Options controls the rendered page.
type Options struct {
	// Title is the document title (default "Контакти").
	Title string

	// Subjects are the selectable subjects. The empty placeholder option is
	// always rendered first.
	Subjects []Subject

	// Stylesheets are linked from the document head.
	Stylesheets []string
}

func (o Options) title() string {
	if o.Title == "" {
		return "Контакти"
	}
	return o.Title
}

type fieldMarkup struct {
	id    contact.FieldID
	label string
	kind  string
}

var fieldMarkups = []fieldMarkup{
	{contact.FieldName, "Ім'я *", "text"},
	{contact.FieldEmail, "Email *", "email"},
	{contact.FieldPhone, "Телефон", "tel"},
	{contact.FieldSubject, "Тема звернення *", "select"},
	{contact.FieldMessage, "Повідомлення *", "textarea"},
}

// Document renders a complete HTML document around the contact section.
func Document(form *contact.Form, surface *Surface, opts Options) Node {
	return Doctype(
		HTML(
			Lang("uk"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(Text(opts.title())),
				Map(opts.Stylesheets, func(href string) Node {
					return Link(Rel("stylesheet"), Href(href))
				}),
			),
			Body(
				Main(Class("contact-page"), Render(form, surface, opts)),
			),
		),
	)
}

// Render renders the contact section: the form with every field's current
// value and error state, and the success panel.
func Render(form *contact.Form, surface *Surface, opts Options) Node {
	if surface == nil {
		surface = NewSurface()
	}
	formNodes := []Node{
		ID("contactForm"),
		Attr("novalidate"),
		If(surface.SuccessVisible(), Style("display: none")),
		If(surface.ScrollTarget() != "", Data("scroll-target", surface.ScrollTarget())),
	}
	for _, m := range fieldMarkups {
		formNodes = append(formNodes, fieldGroup(m, form.Value(m.id), surface, opts))
	}
	formNodes = append(formNodes, Button(Type("submit"), Class("btn btn-primary"), Text("Надіслати")))

	return Section(
		Class("contact-section"),
		H2(Text(opts.title())),
		Form(formNodes...),
		successPanel(surface.SuccessVisible()),
	)
}

func fieldGroup(m fieldMarkup, value string, surface *Surface, opts Options) Node {
	msg, failed := surface.FieldError(m.id)
	id := string(m.id)

	var control Node
	switch m.kind {
	case "select":
		control = Select(ID(id), Name(id), subjectOptions(opts.Subjects, value))
	case "textarea":
		control = Textarea(ID(id), Name(id), Rows("5"), Text(value))
	default:
		control = Input(ID(id), Name(id), Type(m.kind), Value(value))
	}

	class := "form-group"
	if failed {
		class += " error"
	}

	return Div(
		Class(class),
		Label(For(id), Text(m.label)),
		control,
		Span(Class("error-message"), Text(msg)),
	)
}

func subjectOptions(subjects []Subject, selected string) Group {
	nodes := Group{Option(Value(""), Text("Оберіть тему"))}
	for _, s := range subjects {
		if s.Value == selected {
			nodes = append(nodes, Option(Value(s.Value), Selected(), Text(s.Label)))
			continue
		}
		nodes = append(nodes, Option(Value(s.Value), Text(s.Label)))
	}
	return nodes
}

func successPanel(visible bool) Node {
	display := "display: none"
	if visible {
		display = "display: block"
	}
	return Div(
		ID(contact.SuccessTarget),
		Class("form-success"),
		Style(display),
		H3(Text("Дякуємо за повідомлення!")),
		P(Text("Ми зв'яжемося з вами найближчим часом.")),
	)
}
