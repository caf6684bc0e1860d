package vissim

import (
	"strings"

	"github.com/beevik/etree"
)

// Predicate restricts a path step to elements whose attribute equals the value
type Predicate struct {
	Attr  string
	Value string
}

type pathStep struct {
	tag        string
	predicates []Predicate
}

// Path selects elements relative to the root of the document.
//
// Path is a value: Child and Where return extended copies, so a base path
// can be shared between views and operations.
// Caller supplied values never become part of a query string, they are compared as is.
type Path struct {
	// root restricts the document root itself, used when Where is called before any step
	root  []Predicate
	steps []pathStep
}

// NewPath returns path descending through given child tags
func NewPath(tags ...string) Path {
	p := Path{steps: make([]pathStep, 0, len(tags))}
	for _, tag := range tags {
		p.steps = append(p.steps, pathStep{tag: tag})
	}
	return p
}

// Child descends one more level
func (p Path) Child(tag string) Path {
	ext := p.clone(1)
	ext.steps = append(ext.steps, pathStep{tag: tag})
	return ext
}

// Where adds attribute-equality predicate to the last step.
// On a path without steps the predicate applies to the document root.
// Value is converted to string the same way attribute values are written.
func (p Path) Where(attr string, value interface{}) Path {
	ext := p.clone(0)
	pred := Predicate{Attr: attr, Value: formatValue(value)}
	if len(ext.steps) == 0 {
		ext.root = appendPredicate(ext.root, pred)
		return ext
	}
	last := &ext.steps[len(ext.steps)-1]
	last.predicates = appendPredicate(last.predicates, pred)
	return ext
}

func appendPredicate(predicates []Predicate, pred Predicate) []Predicate {
	ans := make([]Predicate, len(predicates), len(predicates)+1)
	copy(ans, predicates)
	return append(ans, pred)
}

func (p Path) clone(extra int) Path {
	steps := make([]pathStep, len(p.steps), len(p.steps)+extra)
	copy(steps, p.steps)
	return Path{root: p.root, steps: steps}
}

// String returns XPath-like representation. It is meant for messages only.
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString(".")
	writePredicates(&sb, p.root)
	for _, step := range p.steps {
		sb.WriteString("/")
		sb.WriteString(step.tag)
		writePredicates(&sb, step.predicates)
	}
	return sb.String()
}

func writePredicates(sb *strings.Builder, predicates []Predicate) {
	for _, pred := range predicates {
		sb.WriteString("[@")
		sb.WriteString(pred.Attr)
		sb.WriteString("=")
		sb.WriteString(quote(pred.Value))
		sb.WriteString("]")
	}
}

func quote(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	return `"` + strings.ReplaceAll(s, `"`, "&quot;") + `"`
}

// resolve returns matched elements in document order
func (p Path) resolve(root *etree.Element) []*etree.Element {
	if root == nil || !matchesAll(root, p.root) {
		return nil
	}
	current := []*etree.Element{root}
	for _, step := range p.steps {
		next := []*etree.Element{}
		for _, parent := range current {
			for _, child := range parent.ChildElements() {
				if step.matches(child) {
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

func (step pathStep) matches(el *etree.Element) bool {
	return el.Tag == step.tag && matchesAll(el, step.predicates)
}

func matchesAll(el *etree.Element, predicates []Predicate) bool {
	for _, pred := range predicates {
		attr := el.SelectAttr(pred.Attr)
		if attr == nil || attr.Value != pred.Value {
			return false
		}
	}
	return true
}
