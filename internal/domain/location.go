package domain

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

const (
	TagLocations        = "Locations"
	TagFileLocation     = "FileLocation"
	TagXMLLocation      = "XMLLocation"
	TagInertialLocation = "InertialLocation"

	attrRow    = "row"
	attrColumn = "column"
	attrXPath  = "xpath"
	attrX      = "x"
	attrY      = "y"
	attrZ      = "z"
)

// Location is one piece of evidence describing where in the checked file an
// issue applies.
type Location interface {
	WriteXML(parent *etree.Element) *etree.Element
	String() string
}

// FileLocation points at a row and column of the checked file.
type FileLocation struct {
	Row    int
	Column int
}

func (l FileLocation) String() string {
	return fmt.Sprintf("row %d, column %d", l.Row, l.Column)
}

func (l FileLocation) WriteXML(parent *etree.Element) *etree.Element {
	el := parent.CreateElement(TagFileLocation)
	el.CreateAttr(attrRow, strconv.Itoa(l.Row))
	el.CreateAttr(attrColumn, strconv.Itoa(l.Column))
	return el
}

// XMLLocation points at a node of the checked file by XPath.
type XMLLocation struct {
	XPath string
}

func (l XMLLocation) String() string { return l.XPath }

func (l XMLLocation) WriteXML(parent *etree.Element) *etree.Element {
	el := parent.CreateElement(TagXMLLocation)
	el.CreateAttr(attrXPath, l.XPath)
	return el
}

// InertialLocation is a point in the inertial coordinate system of the scene.
type InertialLocation struct {
	X, Y, Z float64
}

func (l InertialLocation) String() string {
	return fmt.Sprintf("(%s, %s, %s)", formatFloat(l.X), formatFloat(l.Y), formatFloat(l.Z))
}

func (l InertialLocation) WriteXML(parent *etree.Element) *etree.Element {
	el := parent.CreateElement(TagInertialLocation)
	el.CreateAttr(attrX, formatFloat(l.X))
	el.CreateAttr(attrY, formatFloat(l.Y))
	el.CreateAttr(attrZ, formatFloat(l.Z))
	return el
}

// LocationsContainer groups the locations that together explain an issue,
// with a short description of what they show.
type LocationsContainer struct {
	description string
	locations   []Location
}

// NewLocationsContainer creates a container; nil locations are skipped.
func NewLocationsContainer(description string, locations ...Location) *LocationsContainer {
	c := &LocationsContainer{description: description}
	c.AddLocation(locations...)
	return c
}

func (c *LocationsContainer) AddLocation(locations ...Location) {
	for _, l := range locations {
		if l != nil {
			c.locations = append(c.locations, l)
		}
	}
}

func (c *LocationsContainer) Description() string { return c.description }

func (c *LocationsContainer) Locations() []Location {
	out := make([]Location, len(c.locations))
	copy(out, c.locations)
	return out
}

func (c *LocationsContainer) WriteXML(parent *etree.Element) *etree.Element {
	el := parent.CreateElement(TagLocations)
	el.CreateAttr(AttrDescription, c.description)
	for _, l := range c.locations {
		l.WriteXML(el)
	}
	return el
}

// ParseLocationsContainer rebuilds a container from a Locations element.
func ParseLocationsContainer(el *etree.Element) (*LocationsContainer, error) {
	if el == nil || el.Tag != TagLocations {
		return nil, fmt.Errorf("%w: expected <%s>", ErrMalformedDocument, TagLocations)
	}
	c := NewLocationsContainer(el.SelectAttrValue(AttrDescription, ""))
	for _, child := range el.ChildElements() {
		loc, err := parseLocation(child)
		if err != nil {
			return nil, err
		}
		c.AddLocation(loc)
	}
	return c, nil
}

func parseLocation(el *etree.Element) (Location, error) {
	switch el.Tag {
	case TagFileLocation:
		row, err := intAttr(el, attrRow)
		if err != nil {
			return nil, err
		}
		col, err := intAttr(el, attrColumn)
		if err != nil {
			return nil, err
		}
		return FileLocation{Row: row, Column: col}, nil
	case TagXMLLocation:
		xpath, err := requireAttr(el, attrXPath)
		if err != nil {
			return nil, err
		}
		return XMLLocation{XPath: xpath}, nil
	case TagInertialLocation:
		var vals [3]float64
		for idx, key := range []string{attrX, attrY, attrZ} {
			raw, err := requireAttr(el, key)
			if err != nil {
				return nil, err
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: <%s> attribute %q: %v", ErrMalformedDocument, el.Tag, key, err)
			}
			vals[idx] = v
		}
		return InertialLocation{X: vals[0], Y: vals[1], Z: vals[2]}, nil
	default:
		return nil, fmt.Errorf("%w: unknown location <%s>", ErrMalformedDocument, el.Tag)
	}
}

func intAttr(el *etree.Element, key string) (int, error) {
	raw, err := requireAttr(el, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: <%s> attribute %q: %v", ErrMalformedDocument, el.Tag, key, err)
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
