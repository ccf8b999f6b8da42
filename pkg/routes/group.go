package routes

import "net/http"

// Group shares a path prefix and document tag across its routes. Children
// nest below the parent prefix and inherit its tag unless they set one.
type Group struct {
	Prefix   string
	Tag      string
	Routes   []Route
	Children []Group
}

// Register adds every route in groups to mux as "METHOD /full/path".
func Register(mux *http.ServeMux, groups ...Group) {
	Walk(groups, func(path, tag string, r Route) {
		mux.HandleFunc(r.Method+" "+path, r.Handler)
	})
}

// Walk calls fn for every route with its full path and effective tag.
func Walk(groups []Group, fn func(path, tag string, r Route)) {
	for _, g := range groups {
		walk("", "", g, fn)
	}
}

func walk(parentPrefix, parentTag string, g Group, fn func(path, tag string, r Route)) {
	prefix := parentPrefix + g.Prefix
	tag := g.Tag
	if tag == "" {
		tag = parentTag
	}

	for _, r := range g.Routes {
		fn(prefix+r.Pattern, tag, r)
	}
	for _, child := range g.Children {
		walk(prefix, tag, child, fn)
	}
}
