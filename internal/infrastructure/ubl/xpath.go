package ubl

import (
	"strings"

	"github.com/beevik/etree"
)

// UBL component namespaces
const (
	NamespaceCAC = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NamespaceCBC = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
)

// Resolver evaluates prefixed element paths against a parsed document.
//
// Three path forms are understood:
//
//	cac:LineItem/cbc:Quantity     relative to a context element
//	/main:Order/cbc:ID            anchored at the document root
//	//cbc:LineExtensionAmount     any element in the document
//
// Prefixes resolve through a fixed map: cac, cbc, and main bound to the
// root's default namespace. Elements match on local name and namespace URI,
// so the prefixes used inside the document do not matter.
type Resolver struct {
	root *etree.Element
	ns   map[string]string
}

type step struct {
	space string
	local string
}

// NewResolver creates a resolver rooted at root
func NewResolver(root *etree.Element) *Resolver {
	return &Resolver{
		root: root,
		ns: map[string]string{
			"cac":  NamespaceCAC,
			"cbc":  NamespaceCBC,
			"main": namespaceURI(root),
		},
	}
}

// MainNamespace returns the namespace bound to the main prefix
func (r *Resolver) MainNamespace() string {
	return r.ns["main"]
}

// Find returns every element matching path, in document order.
// A nil ctx means the document root.
func (r *Resolver) Find(ctx *etree.Element, path string) []*etree.Element {
	switch {
	case strings.HasPrefix(path, "//"):
		steps, ok := r.parse(path[2:])
		if !ok {
			return nil
		}
		var starts []*etree.Element
		walk(r.root, func(e *etree.Element) {
			if steps[0].matches(e) {
				starts = append(starts, e)
			}
		})
		return descend(starts, steps[1:])
	case strings.HasPrefix(path, "/"):
		steps, ok := r.parse(path[1:])
		if !ok || !steps[0].matches(r.root) {
			return nil
		}
		return descend([]*etree.Element{r.root}, steps[1:])
	default:
		steps, ok := r.parse(path)
		if !ok {
			return nil
		}
		if ctx == nil {
			ctx = r.root
		}
		return descend([]*etree.Element{ctx}, steps)
	}
}

// FindOne returns the first element matching path, or nil
func (r *Resolver) FindOne(ctx *etree.Element, path string) *etree.Element {
	if found := r.Find(ctx, path); len(found) > 0 {
		return found[0]
	}
	return nil
}

// Exists reports whether path matches at least one element
func (r *Resolver) Exists(ctx *etree.Element, path string) bool {
	return r.FindOne(ctx, path) != nil
}

// Text returns the trimmed text of the first match and whether it exists
func (r *Resolver) Text(ctx *etree.Element, path string) (string, bool) {
	el := r.FindOne(ctx, path)
	if el == nil {
		return "", false
	}
	return strings.TrimSpace(el.Text()), true
}

// TextOr returns the trimmed text of the first match or "" when absent
func (r *Resolver) TextOr(ctx *etree.Element, path string) string {
	text, _ := r.Text(ctx, path)
	return text
}

func (r *Resolver) parse(path string) ([]step, bool) {
	parts := strings.Split(path, "/")
	steps := make([]step, 0, len(parts))
	for _, part := range parts {
		prefix, local, found := strings.Cut(part, ":")
		if !found || local == "" {
			return nil, false
		}
		space, ok := r.ns[prefix]
		if !ok {
			return nil, false
		}
		steps = append(steps, step{space: space, local: local})
	}
	return steps, len(steps) > 0
}

func (s step) matches(e *etree.Element) bool {
	return e.Tag == s.local && namespaceURI(e) == s.space
}

func descend(from []*etree.Element, steps []step) []*etree.Element {
	current := from
	for _, s := range steps {
		var next []*etree.Element
		for _, el := range current {
			for _, child := range el.ChildElements() {
				if s.matches(child) {
					next = append(next, child)
				}
			}
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}

func walk(e *etree.Element, fn func(*etree.Element)) {
	fn(e)
	for _, child := range e.ChildElements() {
		walk(child, fn)
	}
}

// namespaceURI resolves the element's prefix, or the default namespace when
// it has none, against the xmlns declarations in scope.
func namespaceURI(e *etree.Element) string {
	for el := e; el != nil; el = el.Parent() {
		for _, a := range el.Attr {
			if e.Space == "" {
				if a.Space == "" && a.Key == "xmlns" {
					return a.Value
				}
			} else if a.Space == "xmlns" && a.Key == e.Space {
				return a.Value
			}
		}
	}
	return ""
}

// qualifiedName returns the element name in {namespace}local form
func qualifiedName(e *etree.Element) string {
	return "{" + namespaceURI(e) + "}" + e.Tag
}

// attr returns the value of an unprefixed attribute
func attr(e *etree.Element, key string) (string, bool) {
	for _, a := range e.Attr {
		if a.Space == "" && a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func trimmedText(e *etree.Element) string {
	return strings.TrimSpace(e.Text())
}
