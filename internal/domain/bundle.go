package domain

import (
	"fmt"

	"github.com/beevik/etree"
)

const (
	TagCheckerBundle = "CheckerBundle"
	TagParam         = "Param"
	AttrVersion      = "version"
	AttrBuildDate    = "build_date"
	attrValue        = "value"
)

// Param is a named bundle parameter. Order is preserved on write.
type Param struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CheckerBundle groups the checkers of one executable and the parameters it
// ran with.
type CheckerBundle struct {
	name        string
	description string
	summary     string
	version     string
	buildDate   string
	params      []Param
	checkers    []*Checker

	container *ResultContainer
}

func NewCheckerBundle(name, description string) (*CheckerBundle, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: checker bundle name is empty", ErrInvalidArgument)
	}
	return &CheckerBundle{name: name, description: description}, nil
}

func (b *CheckerBundle) Name() string          { return b.name }
func (b *CheckerBundle) Description() string   { return b.description }
func (b *CheckerBundle) Summary() string       { return b.summary }
func (b *CheckerBundle) SetSummary(s string)   { b.summary = s }
func (b *CheckerBundle) Version() string       { return b.version }
func (b *CheckerBundle) SetVersion(v string)   { b.version = v }
func (b *CheckerBundle) BuildDate() string     { return b.buildDate }
func (b *CheckerBundle) SetBuildDate(d string) { b.buildDate = d }

// Container returns the result container the bundle belongs to, or nil.
func (b *CheckerBundle) Container() *ResultContainer { return b.container }

// SetParam replaces an existing parameter or appends a new one.
func (b *CheckerBundle) SetParam(name, value string) {
	for i := range b.params {
		if b.params[i].Name == name {
			b.params[i].Value = value
			return
		}
	}
	b.params = append(b.params, Param{Name: name, Value: value})
}

// Param returns the value of the named parameter, or "".
func (b *CheckerBundle) Param(name string) string {
	for _, p := range b.params {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

func (b *CheckerBundle) Params() []Param {
	out := make([]Param, len(b.params))
	copy(out, b.params)
	return out
}

// SetInputFile records the file the bundle checked.
func (b *CheckerBundle) SetInputFile(path string) { b.SetParam(paramInputFile, path) }

// AddChecker attaches c to the bundle. Checker ids must be unique within a
// bundle.
func (b *CheckerBundle) AddChecker(c *Checker) error {
	if c == nil {
		return fmt.Errorf("%w: nil checker", ErrInvalidArgument)
	}
	if b.Checker(c.id) != nil {
		return fmt.Errorf("%w: duplicate checker %q in bundle %q", ErrInvalidArgument, c.id, b.name)
	}
	c.bundle = b
	b.checkers = append(b.checkers, c)
	return nil
}

// Checker returns the checker with the given id, or nil.
func (b *CheckerBundle) Checker(id string) *Checker {
	for _, c := range b.checkers {
		if c.id == id {
			return c
		}
	}
	return nil
}

func (b *CheckerBundle) Checkers() []*Checker {
	out := make([]*Checker, len(b.checkers))
	copy(out, b.checkers)
	return out
}

func (b *CheckerBundle) writeXML(parent *etree.Element) *etree.Element {
	el := parent.CreateElement(TagCheckerBundle)
	el.CreateAttr(attrName, b.name)
	el.CreateAttr(AttrDescription, b.description)
	el.CreateAttr(AttrSummary, b.summary)
	el.CreateAttr(AttrVersion, b.version)
	el.CreateAttr(AttrBuildDate, b.buildDate)
	for _, p := range b.params {
		pe := el.CreateElement(TagParam)
		pe.CreateAttr(attrName, p.Name)
		pe.CreateAttr(attrValue, p.Value)
	}
	for _, c := range b.checkers {
		c.writeXML(el)
	}
	return el
}
