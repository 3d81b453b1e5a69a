package page

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/tradition-dev/site/pkg/contact"
)

var testSubjects = []Subject{
	{Value: "general", Label: "Загальне питання"},
	{Value: "recipe", Label: "Рецепт"},
}

func renderDoc(t *testing.T, form *contact.Form, surface *Surface) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	if err := Document(form, surface, Options{Subjects: testSubjects}).Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestRenderEmptyForm(t *testing.T) {
	surface := NewSurface()
	form := contact.NewForm(nil, surface)
	doc := renderDoc(t, form, surface)

	if doc.Find("form#contactForm").Length() != 1 {
		t.Fatal("contact form missing")
	}
	if n := doc.Find("form#contactForm .form-group").Length(); n != len(contact.Fields) {
		t.Errorf("form groups = %d, want %d", n, len(contact.Fields))
	}
	if n := doc.Find(".form-group.error").Length(); n != 0 {
		t.Errorf("error groups = %d, want 0", n)
	}
	if n := doc.Find("select#subject option").Length(); n != len(testSubjects)+1 {
		t.Errorf("subject options = %d, want %d", n, len(testSubjects)+1)
	}
	style, _ := doc.Find("#formSuccess").Attr("style")
	if !strings.Contains(style, "none") {
		t.Errorf("success panel style = %q, want hidden", style)
	}
	if _, ok := doc.Find("form#contactForm").Attr("data-scroll-target"); ok {
		t.Error("no scroll target expected")
	}
	if title := doc.Find("title").Text(); title != "Контакти" {
		t.Errorf("title = %q", title)
	}
}

func TestRenderRejectedSubmit(t *testing.T) {
	surface := NewSurface()
	h := contact.NewHandler(contact.WithView(surface))
	h.Input(contact.FieldName, "A")
	h.Input(contact.FieldEmail, "user@example.com")
	h.Input(contact.FieldSubject, "recipe")
	h.Submit(context.Background())

	doc := renderDoc(t, h.Form(), surface)

	var failed []string
	doc.Find(".form-group.error").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Find("input, select, textarea").Attr("id")
		failed = append(failed, id)
	})
	if got := strings.Join(failed, ","); got != "name,message" {
		t.Errorf("failed groups = %q, want name,message", got)
	}

	msg := doc.Find("#name").Closest(".form-group").Find(".error-message").Text()
	if msg != "Ім'я повинно містити мінімум 2 символи" {
		t.Errorf("name message = %q", msg)
	}
	if v, _ := doc.Find("input#email").Attr("value"); v != "user@example.com" {
		t.Errorf("email value = %q", v)
	}
	if v, _ := doc.Find("select#subject option[selected]").Attr("value"); v != "recipe" {
		t.Errorf("selected subject = %q", v)
	}
	if target, _ := doc.Find("form#contactForm").Attr("data-scroll-target"); target != "name" {
		t.Errorf("scroll target = %q, want name", target)
	}
	if surface.SuccessVisible() {
		t.Error("success panel should stay hidden")
	}
}

func TestRenderAcceptedSubmit(t *testing.T) {
	surface := NewSurface()
	h := contact.NewHandler(contact.WithView(surface))
	h.Input(contact.FieldName, "Оксана")
	h.Input(contact.FieldEmail, "oksana@example.com")
	h.Input(contact.FieldSubject, "general")
	h.Input(contact.FieldMessage, "Дякую за рецепт борщу!")
	res := h.Submit(context.Background())
	if !res.Valid() {
		t.Fatalf("submit rejected: %v", res.Err())
	}

	doc := renderDoc(t, h.Form(), surface)

	style, _ := doc.Find("#formSuccess").Attr("style")
	if !strings.Contains(style, "block") {
		t.Errorf("success panel style = %q, want visible", style)
	}
	formStyle, _ := doc.Find("form#contactForm").Attr("style")
	if !strings.Contains(formStyle, "none") {
		t.Errorf("form style = %q, want hidden", formStyle)
	}
	if target, _ := doc.Find("form#contactForm").Attr("data-scroll-target"); target != contact.SuccessTarget {
		t.Errorf("scroll target = %q", target)
	}
	if v, _ := doc.Find("input#name").Attr("value"); v != "" {
		t.Errorf("name value = %q, want reset", v)
	}
	if surface.Resets() != 1 {
		t.Errorf("resets = %d, want 1", surface.Resets())
	}
}

func TestRenderEscapesValues(t *testing.T) {
	surface := NewSurface()
	form := contact.NewForm(nil, surface)
	form.SetValue(contact.FieldMessage, "<script>alert(1)</script>")

	var buf bytes.Buffer
	if err := Render(form, surface, Options{}).Render(&buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<script>") {
		t.Error("message value was not escaped")
	}
}

func TestSurfaceImplementsView(t *testing.T) {
	s := NewSurface()
	s.SetFieldError(contact.FieldEmail, "bad")
	if msg, ok := s.FieldError(contact.FieldEmail); !ok || msg != "bad" {
		t.Errorf("FieldError = %q, %v", msg, ok)
	}
	s.ClearFieldError(contact.FieldEmail)
	if _, ok := s.FieldError(contact.FieldEmail); ok {
		t.Error("flag should be cleared")
	}
	s.ScrollIntoView("phone")
	if s.ScrollTarget() != "phone" {
		t.Errorf("ScrollTarget = %q", s.ScrollTarget())
	}
}
