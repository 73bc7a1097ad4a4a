package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// UnassignedIssueID is the identity of an issue that has not been numbered yet.
const UnassignedIssueID uint64 = 0

// Issue is a single finding reported by a checker rule. It stores what it is
// given: the checker decides content, the result container decides identity.
//
// Evidence is held by pointer and may be shared with report code after the
// checking pass. Issues are not safe for concurrent mutation.
type Issue struct {
	id          uint64
	idSet       bool
	description string
	level       IssueLevel
	ruleUID     string
	enabled     bool

	// checker is a lookup reference only. The caller guarantees the checker
	// outlives the issue.
	checker IssueOwner

	locations          []*LocationsContainer
	domainSpecificInfo []*DomainSpecificInfo
}

// NewIssue creates an enabled, unnumbered issue. Both evidence sequences may
// be empty; nil entries are skipped.
func NewIssue(
	description string,
	level IssueLevel,
	ruleUID string,
	locations []*LocationsContainer,
	infos []*DomainSpecificInfo,
) (*Issue, error) {
	if err := validateIssueFields(description, level, ruleUID); err != nil {
		return nil, err
	}
	issue := &Issue{
		id:          UnassignedIssueID,
		description: description,
		level:       level,
		ruleUID:     ruleUID,
		enabled:     true,
	}
	issue.AddLocationsContainer(locations...)
	issue.AddDomainSpecificInfo(infos...)
	return issue, nil
}

func validateIssueFields(description string, level IssueLevel, ruleUID string) error {
	if description == "" {
		return fmt.Errorf("%w: issue description is empty", ErrInvalidArgument)
	}
	if !level.Valid() {
		return fmt.Errorf("%w: issue level %d is not one of 1, 2, 3", ErrInvalidArgument, int(level))
	}
	if ruleUID == "" {
		return fmt.Errorf("%w: issue rule uid is empty", ErrInvalidArgument)
	}
	return nil
}

// AddLocationsContainer appends location evidence in the order given.
func (i *Issue) AddLocationsContainer(containers ...*LocationsContainer) {
	for _, c := range containers {
		if c != nil {
			i.locations = append(i.locations, c)
		}
	}
}

// AddDomainSpecificInfo appends domain evidence in the order given.
func (i *Issue) AddDomainSpecificInfo(infos ...*DomainSpecificInfo) {
	for _, d := range infos {
		if d != nil {
			i.domainSpecificInfo = append(i.domainSpecificInfo, d)
		}
	}
}

// NeedsIssueID reports whether the issue still waits for an identity: it is
// at the unassigned sentinel and no id was ever supplied, neither by a parsed
// document nor by a setter.
func (i *Issue) NeedsIssueID() bool {
	return i.id == UnassignedIssueID && !i.idSet
}

// SetIssueID stores id. An issue that already holds a different non-zero id
// is left untouched; only the owning ResultContainer renumbers.
func (i *Issue) SetIssueID(id uint64) error {
	if i.id != UnassignedIssueID && i.id != id {
		return fmt.Errorf("%w: %w: issue %d cannot become %d", ErrInvalidArgument, ErrIssueIDAssigned, i.id, id)
	}
	i.id = id
	i.idSet = true
	return nil
}

// SetIssueIDString parses a decimal id and stores it.
func (i *Issue) SetIssueIDString(s string) error {
	id, err := parseIssueID(s)
	if err != nil {
		return err
	}
	return i.SetIssueID(id)
}

func parseIssueID(s string) (uint64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty issue id", ErrParse)
	}
	id, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: issue id %q: %v", ErrParse, s, err)
	}
	return id, nil
}

// NextFreeID asks the owning checker for the next unused identity without
// changing the issue.
func (i *Issue) NextFreeID() (uint64, error) {
	if i.checker == nil {
		return 0, ErrNoChecker
	}
	return i.checker.NextFreeID()
}

// AssignChecker attaches the issue to its owner. A nil *Checker detaches it.
func (i *Issue) AssignChecker(c IssueOwner) {
	if ch, ok := c.(*Checker); ok && ch == nil {
		i.checker = nil
		return
	}
	i.checker = c
}

// Checker returns the checker that raised the issue, or nil when the issue is
// unowned.
func (i *Issue) Checker() IssueOwner { return i.checker }

// InputFilename returns the base name of the checked file, or "" when the
// issue has no checker.
func (i *Issue) InputFilename() string {
	if i.checker == nil {
		return ""
	}
	return i.checker.InputFilename()
}

// InputFilepath returns the path of the checked file, or "" when the issue has
// no checker.
func (i *Issue) InputFilepath() string {
	if i.checker == nil {
		return ""
	}
	return i.checker.InputFilepath()
}

func (i *Issue) SetDescription(description string) error {
	if description == "" {
		return fmt.Errorf("%w: issue description is empty", ErrInvalidArgument)
	}
	i.description = description
	return nil
}

func (i *Issue) SetLevel(level IssueLevel) error {
	if !level.Valid() {
		return fmt.Errorf("%w: issue level %d is not one of 1, 2, 3", ErrInvalidArgument, int(level))
	}
	i.level = level
	return nil
}

func (i *Issue) SetRuleUID(ruleUID string) error {
	if ruleUID == "" {
		return fmt.Errorf("%w: issue rule uid is empty", ErrInvalidArgument)
	}
	i.ruleUID = ruleUID
	return nil
}

func (i *Issue) ID() uint64          { return i.id }
func (i *Issue) Description() string { return i.description }
func (i *Issue) Level() IssueLevel   { return i.level }
func (i *Issue) RuleUID() string     { return i.ruleUID }

// LevelString returns the token written for the issue's level.
func (i *Issue) LevelString() string { return i.level.String() }

func (i *Issue) Enabled() bool     { return i.enabled }
func (i *Issue) SetEnabled(v bool) { i.enabled = v }

// Locations returns the location evidence in insertion order. The slice is a
// copy; the containers are shared.
func (i *Issue) Locations() []*LocationsContainer {
	out := make([]*LocationsContainer, len(i.locations))
	copy(out, i.locations)
	return out
}

// DomainSpecificInfo returns the domain evidence in insertion order. The slice
// is a copy; the entries are shared.
func (i *Issue) DomainSpecificInfo() []*DomainSpecificInfo {
	out := make([]*DomainSpecificInfo, len(i.domainSpecificInfo))
	copy(out, i.domainSpecificInfo)
	return out
}

func (i *Issue) LocationsCount() int      { return len(i.locations) }
func (i *Issue) DomainSpecificCount() int { return len(i.domainSpecificInfo) }
func (i *Issue) HasLocations() bool       { return len(i.locations) > 0 }
func (i *Issue) HasDomainSpecificInfo() bool {
	return len(i.domainSpecificInfo) > 0
}
