package vissim

import (
	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// selectOne resolves path to exactly one element
func (doc *Document) selectOne(p Path) (*etree.Element, error) {
	found := p.resolve(doc.root())
	switch len(found) {
	case 0:
		return nil, errors.Wrapf(ErrNotFound, "%s", p)
	case 1:
		return found[0], nil
	default:
		return nil, errors.Wrapf(ErrAmbiguous, "%s matched %d elements", p, len(found))
	}
}

// GetAttributes returns attributes of the single element selected by path
func (doc *Document) GetAttributes(p Path) (Attributes, error) {
	el, err := doc.selectOne(p)
	if err != nil {
		return nil, err
	}
	return attributesOf(el), nil
}

// GetChildren returns attributes of every element selected by path, in document order
func (doc *Document) GetChildren(p Path) []Attributes {
	found := p.resolve(doc.root())
	ans := make([]Attributes, 0, len(found))
	for _, el := range found {
		ans = append(ans, attributesOf(el))
	}
	return ans
}

// SetAttribute overwrites existing attribute of the single element selected by path.
// New attributes can't be introduced this way.
func (doc *Document) SetAttribute(p Path, attr string, value interface{}) error {
	el, err := doc.selectOne(p)
	if err != nil {
		return err
	}
	return setExisting(el, attr, value)
}

// AppendChild adds new last child with given attributes to the single element selected by path
func (doc *Document) AppendChild(p Path, tag string, attrs []Attr) error {
	el, err := doc.selectOne(p)
	if err != nil {
		return err
	}
	appendChild(el, tag, attrs)
	return nil
}

// RemoveChild detaches element selected by child path from element selected by parent path
func (doc *Document) RemoveChild(parent, child Path) error {
	parentEl, err := doc.selectOne(parent)
	if err != nil {
		return errors.Wrap(err, "parent")
	}
	childEl, err := doc.selectOne(child)
	if err != nil {
		return errors.Wrap(err, "child")
	}
	if childEl.Parent() != parentEl {
		return errors.Wrapf(ErrNotChild, "%s is not under %s", child, parent)
	}
	parentEl.RemoveChild(childEl)
	return nil
}

func attributesOf(el *etree.Element) Attributes {
	ans := make(Attributes, len(el.Attr))
	for i := range el.Attr {
		ans[el.Attr[i].FullKey()] = el.Attr[i].Value
	}
	return ans
}

func setExisting(el *etree.Element, attr string, value interface{}) error {
	if el.SelectAttr(attr) == nil {
		return errors.Wrapf(ErrUnknownAttribute, "'%s' of <%s>", attr, el.Tag)
	}
	el.CreateAttr(attr, formatValue(value))
	return nil
}

func appendChild(el *etree.Element, tag string, attrs []Attr) *etree.Element {
	child := el.CreateElement(tag)
	for _, attr := range attrs {
		child.CreateAttr(attr.Key, formatValue(attr.Value))
	}
	return child
}
