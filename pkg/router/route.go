package router

import "strings"

// DefaultRoute is the route name used for an empty fragment.
const DefaultRoute = "home"

// Route is the state derived from the location fragment.
type Route struct {
	Name   string
	Params []string
}

// Parse derives a Route from a fragment such as "#completed/x/y". One leading
// '#' is ignored. The fragment is split on '/': the first segment names the
// route (DefaultRoute when empty) and the rest are its parameters, verbatim.
func Parse(fragment string) Route {
	return parse(fragment, DefaultRoute)
}

func parse(fragment, fallback string) Route {
	fragment = strings.TrimPrefix(fragment, "#")
	segments := strings.Split(fragment, "/")

	r := Route{Name: segments[0], Params: segments[1:]}
	if r.Name == "" {
		r.Name = fallback
	}
	return r
}

// Param returns the i-th parameter, or "" when absent.
func (r Route) Param(i int) string {
	if i < 0 || i >= len(r.Params) {
		return ""
	}
	return r.Params[i]
}

// Fragment returns the fragment that parses back to r, including '#'.
func (r Route) Fragment() string {
	return Fragment(r.Name, r.Params...)
}

// String implements fmt.Stringer.
func (r Route) String() string {
	return r.Fragment()
}

// Fragment builds "#name/p1/p2".
func Fragment(name string, params ...string) string {
	var b strings.Builder
	b.WriteByte('#')
	b.WriteString(name)
	for _, p := range params {
		b.WriteByte('/')
		b.WriteString(p)
	}
	return b.String()
}
