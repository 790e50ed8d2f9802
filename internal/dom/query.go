package dom

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// QuerySelector returns the first element matching sel outside shadow trees.
func (d *Document) QuerySelector(sel string) (*Element, error) {
	return d.queryFirst(d.root, sel)
}

// QuerySelectorAll returns all elements matching sel outside shadow trees.
func (d *Document) QuerySelectorAll(sel string) ([]*Element, error) {
	return d.queryAll(d.root, sel)
}

func (d *Document) queryAll(scope *html.Node, sel string) ([]*Element, error) {
	compiled, err := cascadia.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", sel, err)
	}

	var matches []*Element
	for _, n := range compiled.MatchAll(scope) {
		if n == scope || !d.inScope(n, scope) {
			continue
		}
		matches = append(matches, d.wrap(n))
	}
	return matches, nil
}

func (d *Document) queryFirst(scope *html.Node, sel string) (*Element, error) {
	matches, err := d.queryAll(scope, sel)
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	return matches[0], nil
}

// inScope reports whether n belongs to the tree rooted at scope without
// crossing into a shadow tree on the way.
func (d *Document) inScope(n, scope *html.Node) bool {
	if _, isShadow := d.shadows[n]; isShadow {
		return false
	}
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		if cur == scope {
			return true
		}
		if _, isShadow := d.shadows[cur]; isShadow {
			return false
		}
	}
	return false
}
