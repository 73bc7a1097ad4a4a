package domain

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/beevik/etree"
)

const (
	TagChecker       = "Checker"
	AttrCheckerID    = "checkerId"
	AttrSummary      = "summary"
	AttrStatus       = "status"
	paramInputFile   = "InputFile"
	firstIssueNumber = uint64(1)
)

// CheckerStatus records how a checker run ended.
type CheckerStatus string

const (
	CheckerStatusCompleted CheckerStatus = "completed"
	CheckerStatusSkipped   CheckerStatus = "skipped"
	CheckerStatusError     CheckerStatus = "error"
)

// IssueOwner is what an issue needs from the checker that raised it.
// *Checker implements it.
type IssueOwner interface {
	// NextFreeID returns the next unused identity in the owner's namespace
	// without reserving it.
	NextFreeID() (uint64, error)
	InputFilename() string
	InputFilepath() string
}

// Checker is one rule-execution unit of a bundle and the owner of the issues
// it raised.
type Checker struct {
	id          string
	description string
	summary     string
	status      CheckerStatus

	bundle *CheckerBundle
	issues []*Issue
}

// NewChecker creates a checker. The id is mandatory.
func NewChecker(id, description string) (*Checker, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: checker id is empty", ErrInvalidArgument)
	}
	return &Checker{id: id, description: description}, nil
}

func (c *Checker) ID() string                { return c.id }
func (c *Checker) Description() string       { return c.description }
func (c *Checker) Summary() string           { return c.summary }
func (c *Checker) SetSummary(s string)       { c.summary = s }
func (c *Checker) Status() CheckerStatus     { return c.status }
func (c *Checker) SetStatus(s CheckerStatus) { c.status = s }
func (c *Checker) Bundle() *CheckerBundle    { return c.bundle }

// AddIssue registers issue with the checker and makes the checker its owner.
func (c *Checker) AddIssue(issue *Issue) {
	if issue == nil {
		return
	}
	issue.AssignChecker(c)
	c.issues = append(c.issues, issue)
}

// Issues returns the checker's issues in insertion order.
func (c *Checker) Issues() []*Issue {
	out := make([]*Issue, len(c.issues))
	copy(out, c.issues)
	return out
}

func (c *Checker) IssueCount() int { return len(c.issues) }

// NextFreeID delegates to the result container when the checker is part of
// one, so ids are unique across the whole document.
func (c *Checker) NextFreeID() (uint64, error) {
	if c.bundle != nil && c.bundle.container != nil {
		return c.bundle.container.NextFreeID()
	}
	return nextAfter(c.issues)
}

// InputFilepath returns the bundle's InputFile parameter.
func (c *Checker) InputFilepath() string {
	if c.bundle == nil {
		return ""
	}
	return c.bundle.Param(paramInputFile)
}

func (c *Checker) InputFilename() string {
	p := c.InputFilepath()
	if p == "" {
		return ""
	}
	return filepath.Base(p)
}

func (c *Checker) writeXML(parent *etree.Element) *etree.Element {
	el := parent.CreateElement(TagChecker)
	el.CreateAttr(AttrCheckerID, c.id)
	el.CreateAttr(AttrDescription, c.description)
	el.CreateAttr(AttrSummary, c.summary)
	if c.status != "" {
		el.CreateAttr(AttrStatus, string(c.status))
	}
	for _, issue := range c.issues {
		if !issue.Enabled() {
			continue
		}
		issue.WriteXML(el)
	}
	return el
}

// nextAfter returns one past the highest id in issues. It fails instead of
// wrapping to the unassigned sentinel.
func nextAfter(issues []*Issue) (uint64, error) {
	var max uint64
	for _, issue := range issues {
		if issue.id > max {
			max = issue.id
		}
	}
	if max == math.MaxUint64 {
		return 0, fmt.Errorf("%w: issue id %d is taken", ErrIDSpaceExhausted, max)
	}
	return max + firstIssueNumber, nil
}
