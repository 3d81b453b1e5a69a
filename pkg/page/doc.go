// Package page renders the contact page of the site.
//
// A Surface records what a contact.Handler asks the browser to show: error
// flags, the success panel and scroll targets. Render turns a form and its
// surface into gomponents nodes with the site's markup:
//
//	surface := page.NewSurface()
//	h := contact.NewHandler(contact.WithView(surface))
//	h.Submit(ctx)
//	page.Render(h.Form(), surface, page.Options{}).Render(w)
package page
