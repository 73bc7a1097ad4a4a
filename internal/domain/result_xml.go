package domain

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

const TagCheckerResults = "CheckerResults"

// ParseOptions controls how ParseResults treats malformed issues.
type ParseOptions struct {
	// Strict aborts on the first malformed issue instead of skipping it.
	Strict bool
}

// SkippedIssue describes an Issue element that was dropped while parsing.
type SkippedIssue struct {
	Bundle  string
	Checker string
	Index   int
	Err     error
}

func (s SkippedIssue) Error() string {
	return fmt.Sprintf("%s/%s issue #%d: %v", s.Bundle, s.Checker, s.Index, s.Err)
}

func (s SkippedIssue) Unwrap() error { return s.Err }

// ParseReport summarizes a lenient parse.
type ParseReport struct {
	Skipped []SkippedIssue
	// Unnumbered counts parsed issues that carried no id attribute.
	Unnumbered int
}

// Err joins all skipped issue errors, or returns nil.
func (r *ParseReport) Err() error {
	if r == nil || len(r.Skipped) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Skipped))
	for _, s := range r.Skipped {
		errs = append(errs, s)
	}
	return errors.Join(errs...)
}

// WriteXML assigns missing issue ids and writes the container as the root of
// doc. Disabled issues are left out of the document.
func (rc *ResultContainer) WriteXML(doc *etree.Document) (*etree.Element, error) {
	if _, err := rc.AssignIssueIDs(); err != nil {
		return nil, err
	}

	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(TagCheckerResults)
	root.CreateAttr(AttrVersion, rc.version)
	for _, b := range rc.bundles {
		b.writeXML(root)
	}
	return root, nil
}

// ParseResults rebuilds a container from a result document. Structural
// errors outside of issues always fail. A malformed issue fails in strict
// mode and is skipped otherwise; skipped issues are never registered with a
// checker.
func ParseResults(doc *etree.Document, opts ParseOptions) (*ResultContainer, *ParseReport, error) {
	root := doc.Root()
	if root == nil || root.Tag != TagCheckerResults {
		return nil, nil, fmt.Errorf("%w: root element must be <%s>", ErrMalformedDocument, TagCheckerResults)
	}

	rc := NewResultContainer()
	if v := root.SelectAttrValue(AttrVersion, ""); v != "" {
		rc.version = v
	}
	report := &ParseReport{}

	for _, bundleEl := range root.SelectElements(TagCheckerBundle) {
		bundle, err := parseBundle(bundleEl, opts, report)
		if err != nil {
			return nil, nil, err
		}
		if err := rc.AddCheckerBundle(bundle); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}
	}
	return rc, report, nil
}

func parseBundle(el *etree.Element, opts ParseOptions, report *ParseReport) (*CheckerBundle, error) {
	name, err := requireAttr(el, attrName)
	if err != nil {
		return nil, err
	}
	bundle, err := NewCheckerBundle(name, el.SelectAttrValue(AttrDescription, ""))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	bundle.summary = el.SelectAttrValue(AttrSummary, "")
	bundle.version = el.SelectAttrValue(AttrVersion, "")
	bundle.buildDate = el.SelectAttrValue(AttrBuildDate, "")

	for _, pe := range el.SelectElements(TagParam) {
		pname, err := requireAttr(pe, attrName)
		if err != nil {
			return nil, err
		}
		bundle.SetParam(pname, pe.SelectAttrValue(attrValue, ""))
	}

	for _, ce := range el.SelectElements(TagChecker) {
		checker, err := parseChecker(ce, name, opts, report)
		if err != nil {
			return nil, err
		}
		if err := bundle.AddChecker(checker); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}
	}
	return bundle, nil
}

func parseChecker(el *etree.Element, bundleName string, opts ParseOptions, report *ParseReport) (*Checker, error) {
	id, err := requireAttr(el, AttrCheckerID)
	if err != nil {
		return nil, err
	}
	checker, err := NewChecker(id, el.SelectAttrValue(AttrDescription, ""))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	checker.summary = el.SelectAttrValue(AttrSummary, "")
	checker.status = CheckerStatus(el.SelectAttrValue(AttrStatus, ""))

	for idx, ie := range el.SelectElements(TagIssue) {
		issue, err := parseIssueTree(ie, checker)
		if err != nil {
			skipped := SkippedIssue{Bundle: bundleName, Checker: id, Index: idx, Err: err}
			if opts.Strict {
				return nil, skipped
			}
			report.Skipped = append(report.Skipped, skipped)
			continue
		}
		if issue.NeedsIssueID() {
			report.Unnumbered++
		}
		checker.AddIssue(issue)
	}
	return checker, nil
}

// parseIssueTree parses an Issue element and then its evidence children.
func parseIssueTree(el *etree.Element, checker *Checker) (*Issue, error) {
	issue, err := ParseIssueXML(el, checker)
	if err != nil {
		return nil, err
	}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case TagLocations:
			loc, err := ParseLocationsContainer(child)
			if err != nil {
				return nil, err
			}
			issue.AddLocationsContainer(loc)
		case TagDomainSpecificInfo:
			info, err := ParseDomainSpecificInfo(child)
			if err != nil {
				return nil, err
			}
			issue.AddDomainSpecificInfo(info)
		default:
			return nil, fmt.Errorf("%w: unexpected <%s> inside <%s>", ErrMalformedDocument, child.Tag, TagIssue)
		}
	}
	return issue, nil
}
