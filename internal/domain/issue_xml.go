package domain

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

// Result document vocabulary for issues.
const (
	TagIssue        = "Issue"
	AttrIssueID     = "id"
	AttrDescription = "description"
	AttrLevel       = "level"
	AttrRuleUID     = "ruleUID"
)

// WriteXML appends an Issue element to parent and returns it. Location
// elements come first, then domain specific info, each in insertion order.
// The enabled flag and the checker are not part of the document.
func (i *Issue) WriteXML(parent *etree.Element) *etree.Element {
	el := parent.CreateElement(TagIssue)
	el.CreateAttr(AttrIssueID, strconv.FormatUint(i.id, 10))
	el.CreateAttr(AttrDescription, i.description)
	el.CreateAttr(AttrLevel, i.level.String())
	el.CreateAttr(AttrRuleUID, i.ruleUID)

	for _, loc := range i.locations {
		loc.WriteXML(el)
	}
	for _, info := range i.domainSpecificInfo {
		info.WriteXML(el)
	}
	return el
}

// ParseIssueXML builds an issue from the attributes of an Issue element and
// attaches owner. Child elements are left to the caller, which adds them with
// AddLocationsContainer and AddDomainSpecificInfo. On error no issue is
// returned.
func ParseIssueXML(el *etree.Element, owner IssueOwner) (*Issue, error) {
	if el == nil {
		return nil, fmt.Errorf("%w: nil %s element", ErrMalformedDocument, TagIssue)
	}
	if el.Tag != TagIssue {
		return nil, fmt.Errorf("%w: expected <%s>, got <%s>", ErrMalformedDocument, TagIssue, el.Tag)
	}

	description, err := requireAttr(el, AttrDescription)
	if err != nil {
		return nil, err
	}
	levelStr, err := requireAttr(el, AttrLevel)
	if err != nil {
		return nil, err
	}
	ruleUID, err := requireAttr(el, AttrRuleUID)
	if err != nil {
		return nil, err
	}

	level, err := ParseIssueLevel(levelStr)
	if err != nil {
		return nil, err
	}

	issue, err := NewIssue(description, level, ruleUID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	if attr := el.SelectAttr(AttrIssueID); attr != nil {
		if err := issue.SetIssueIDString(attr.Value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}
	}

	issue.AssignChecker(owner)
	return issue, nil
}

// requireAttr returns the value of a mandatory attribute. An attribute that is
// present but empty counts as missing.
func requireAttr(el *etree.Element, key string) (string, error) {
	attr := el.SelectAttr(key)
	if attr == nil || attr.Value == "" {
		return "", fmt.Errorf("%w: <%s> is missing attribute %q", ErrMalformedDocument, el.Tag, key)
	}
	return attr.Value, nil
}
