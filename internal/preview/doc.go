// Package preview serves a local copy of the site for development.
//
// The server only answers GET and HEAD requests. It serves the static site
// files, renders the contact page at /contact with the remembered name
// filled in, and exposes /metrics and /healthz. It never receives form
// data: validation happens on the page itself.
package preview
