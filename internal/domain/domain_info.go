package domain

import (
	"fmt"

	"github.com/beevik/etree"
)

const (
	TagDomainSpecificInfo = "DomainSpecificInfo"
	attrName              = "name"
)

// DomainSpecificInfo carries format specific context for an issue, such as
// the road or lane a finding belongs to. Its content is an opaque element
// tree owned by the checker that produced it.
type DomainSpecificInfo struct {
	name    string
	content []*etree.Element
}

// NewDomainSpecificInfo stores deep copies of content.
func NewDomainSpecificInfo(name string, content ...*etree.Element) *DomainSpecificInfo {
	d := &DomainSpecificInfo{name: name}
	for _, c := range content {
		if c != nil {
			d.content = append(d.content, c.Copy())
		}
	}
	return d
}

func (d *DomainSpecificInfo) Name() string { return d.name }

// Content returns copies of the stored elements.
func (d *DomainSpecificInfo) Content() []*etree.Element {
	out := make([]*etree.Element, 0, len(d.content))
	for _, c := range d.content {
		out = append(out, c.Copy())
	}
	return out
}

func (d *DomainSpecificInfo) WriteXML(parent *etree.Element) *etree.Element {
	el := parent.CreateElement(TagDomainSpecificInfo)
	el.CreateAttr(attrName, d.name)
	for _, c := range d.content {
		el.AddChild(c.Copy())
	}
	return el
}

// ParseDomainSpecificInfo rebuilds domain info from its element. The name
// attribute is mandatory.
func ParseDomainSpecificInfo(el *etree.Element) (*DomainSpecificInfo, error) {
	if el == nil || el.Tag != TagDomainSpecificInfo {
		return nil, fmt.Errorf("%w: expected <%s>", ErrMalformedDocument, TagDomainSpecificInfo)
	}
	name, err := requireAttr(el, attrName)
	if err != nil {
		return nil, err
	}
	return NewDomainSpecificInfo(name, el.ChildElements()...), nil
}
