package domain

import (
	"fmt"
	"math"
)

// ResultContainer owns every bundle of a checking run and is the single
// place where issue identities are numbered. Identity numbering needs a total
// order over all issues, so checkers running in parallel must be merged into
// one container before AssignIssueIDs is called.
type ResultContainer struct {
	version string
	bundles []*CheckerBundle
}

// ResultFormatVersion is written into the root element of new documents.
const ResultFormatVersion = "1.0.0"

func NewResultContainer() *ResultContainer {
	return &ResultContainer{version: ResultFormatVersion}
}

func (rc *ResultContainer) Version() string { return rc.version }

// AddCheckerBundle attaches b. Bundle names must be unique.
func (rc *ResultContainer) AddCheckerBundle(b *CheckerBundle) error {
	if b == nil {
		return fmt.Errorf("%w: nil checker bundle", ErrInvalidArgument)
	}
	if rc.Bundle(b.name) != nil {
		return fmt.Errorf("%w: duplicate checker bundle %q", ErrInvalidArgument, b.name)
	}
	b.container = rc
	rc.bundles = append(rc.bundles, b)
	return nil
}

// Bundle returns the bundle with the given name, or nil.
func (rc *ResultContainer) Bundle(name string) *CheckerBundle {
	for _, b := range rc.bundles {
		if b.name == name {
			return b
		}
	}
	return nil
}

func (rc *ResultContainer) Bundles() []*CheckerBundle {
	out := make([]*CheckerBundle, len(rc.bundles))
	copy(out, rc.bundles)
	return out
}

// Issues returns all issues in document order: bundle, checker, insertion.
func (rc *ResultContainer) Issues() []*Issue {
	var out []*Issue
	for _, b := range rc.bundles {
		for _, c := range b.checkers {
			out = append(out, c.issues...)
		}
	}
	return out
}

func (rc *ResultContainer) IssueCount() int {
	n := 0
	for _, b := range rc.bundles {
		for _, c := range b.checkers {
			n += len(c.issues)
		}
	}
	return n
}

// IssueByID returns the first issue with the given identity, or nil.
func (rc *ResultContainer) IssueByID(id uint64) *Issue {
	if id == UnassignedIssueID {
		return nil
	}
	for _, issue := range rc.Issues() {
		if issue.id == id {
			return issue
		}
	}
	return nil
}

// NextFreeID returns one past the highest identity in use.
func (rc *ResultContainer) NextFreeID() (uint64, error) {
	return nextAfter(rc.Issues())
}

// AssignIssueIDs numbers every issue that still needs an identity, in
// document order, and returns how many were numbered. When the remaining id
// space cannot hold all of them nothing is assigned.
func (rc *ResultContainer) AssignIssueIDs() (int, error) {
	issues := rc.Issues()

	var pending []*Issue
	for _, issue := range issues {
		if issue.NeedsIssueID() {
			pending = append(pending, issue)
		}
	}
	if len(pending) == 0 {
		return 0, nil
	}

	next, err := nextAfter(issues)
	if err != nil {
		return 0, err
	}
	if uint64(len(pending)-1) > math.MaxUint64-next {
		return 0, fmt.Errorf("%w: %d issues need ids after %d", ErrIDSpaceExhausted, len(pending), next-1)
	}

	for _, issue := range pending {
		issue.id = next
		issue.idSet = true
		next++
	}
	return len(pending), nil
}

// RenumberIssues rewrites every identity to 1..N in document order.
func (rc *ResultContainer) RenumberIssues() {
	next := firstIssueNumber
	for _, issue := range rc.Issues() {
		issue.id = next
		issue.idSet = true
		next++
	}
}

// CountByLevel counts issues per level. With enabledOnly set, disabled issues
// are left out.
func (rc *ResultContainer) CountByLevel(enabledOnly bool) map[IssueLevel]int {
	counts := make(map[IssueLevel]int, len(IssueLevels))
	for _, l := range IssueLevels {
		counts[l] = 0
	}
	for _, issue := range rc.Issues() {
		if enabledOnly && !issue.enabled {
			continue
		}
		counts[issue.level]++
	}
	return counts
}

// HasErrors reports whether any enabled issue has LevelError.
func (rc *ResultContainer) HasErrors() bool {
	for _, issue := range rc.Issues() {
		if issue.enabled && issue.level == LevelError {
			return true
		}
	}
	return false
}
