package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// IssueLevel is the severity of an issue. The numeric values are part of the
// result document contract.
type IssueLevel int

const (
	LevelError   IssueLevel = 1
	LevelWarning IssueLevel = 2
	LevelInfo    IssueLevel = 3
)

// issueLevelTokens maps each level to the token written into the level
// attribute of an Issue element.
var issueLevelTokens = map[IssueLevel]string{
	LevelError:   "error",
	LevelWarning: "warning",
	LevelInfo:    "information",
}

// IssueLevels lists every level from most to least severe.
var IssueLevels = []IssueLevel{LevelError, LevelWarning, LevelInfo}

// Valid reports whether l is one of the three defined levels.
func (l IssueLevel) Valid() bool {
	_, ok := issueLevelTokens[l]
	return ok
}

func (l IssueLevel) String() string {
	if s, ok := issueLevelTokens[l]; ok {
		return s
	}
	return fmt.Sprintf("IssueLevel(%d)", int(l))
}

// MoreSevereThan reports whether l ranks above other. Lower numbers are more
// severe.
func (l IssueLevel) MoreSevereThan(other IssueLevel) bool {
	return l < other
}

// AtLeast reports whether l is as severe as min or more.
func (l IssueLevel) AtLeast(min IssueLevel) bool {
	return l <= min
}

func (l IssueLevel) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: issue level %d", ErrInvalidArgument, int(l))
	}
	return []byte(l.String()), nil
}

func (l *IssueLevel) UnmarshalText(text []byte) error {
	lvl, err := ParseIssueLevel(string(text))
	if err != nil {
		return err
	}
	*l = lvl
	return nil
}

// IssueLevelFromInt converts a raw severity value, rejecting anything outside
// the enumeration.
func IssueLevelFromInt(v int) (IssueLevel, error) {
	l := IssueLevel(v)
	if !l.Valid() {
		return 0, fmt.Errorf("%w: issue level %d is not one of 1, 2, 3", ErrInvalidArgument, v)
	}
	return l, nil
}

// ParseIssueLevel maps a level token back to its IssueLevel. Besides the
// canonical tokens it accepts "info" and the numeric forms "1".."3", which
// older result files use.
func ParseIssueLevel(s string) (IssueLevel, error) {
	token := strings.ToLower(strings.TrimSpace(s))
	for l, t := range issueLevelTokens {
		if token == t {
			return l, nil
		}
	}
	if token == "info" {
		return LevelInfo, nil
	}
	if n, err := strconv.Atoi(token); err == nil && IssueLevel(n).Valid() {
		return IssueLevel(n), nil
	}
	return 0, fmt.Errorf("%w: unknown issue level %q", ErrMalformedDocument, s)
}
