// Package routes declares HTTP routes as data so they can be registered on a
// mux and described in the API document from one source.
package routes

import "net/http"

// Route binds a method and pattern to a handler. Summary describes the
// operation in the API document.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	Summary string
}
