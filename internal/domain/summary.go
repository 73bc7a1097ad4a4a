package domain

import "time"

// Summary is the reportable view of a result document.
type Summary struct {
	File      string       `json:"file"`
	Version   string       `json:"version"`
	Revision  string       `json:"revision,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
	Total     int          `json:"total"`
	Reported  int          `json:"reported"`
	Errors    int          `json:"errors"`
	Warnings  int          `json:"warnings"`
	Infos     int          `json:"infos"`
	Bundles   []BundleView `json:"bundles"`
	Issues    []IssueView  `json:"issues"`
	Skipped   []string     `json:"skipped,omitempty"`
}

// Passed reports whether no enabled error remains.
func (s Summary) Passed() bool { return s.Errors == 0 }

type BundleView struct {
	Name      string        `json:"name"`
	Version   string        `json:"version,omitempty"`
	InputFile string        `json:"input_file,omitempty"`
	Checkers  []CheckerView `json:"checkers"`
}

type CheckerView struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	IssueCount  int    `json:"issue_count"`
}

// IssueView flattens an issue and its owner for rendering and JSON output.
type IssueView struct {
	ID                 uint64         `json:"id"`
	Level              string         `json:"level"`
	Description        string         `json:"description"`
	RuleUID            string         `json:"rule_uid"`
	Checker            string         `json:"checker,omitempty"`
	Bundle             string         `json:"bundle,omitempty"`
	InputFile          string         `json:"input_file,omitempty"`
	Enabled            bool           `json:"enabled"`
	Locations          []LocationView `json:"locations,omitempty"`
	DomainSpecificInfo []string       `json:"domain_specific_info,omitempty"`
}

type LocationView struct {
	Description string   `json:"description,omitempty"`
	Points      []string `json:"points"`
}

// NewIssueView builds the flat view of issue.
func NewIssueView(issue *Issue) IssueView {
	v := IssueView{
		ID:          issue.ID(),
		Level:       issue.LevelString(),
		Description: issue.Description(),
		RuleUID:     issue.RuleUID(),
		InputFile:   issue.InputFilename(),
		Enabled:     issue.Enabled(),
	}
	if c, ok := issue.Checker().(*Checker); ok && c != nil {
		v.Checker = c.ID()
		if b := c.Bundle(); b != nil {
			v.Bundle = b.Name()
		}
	}
	for _, lc := range issue.Locations() {
		lv := LocationView{Description: lc.Description(), Points: []string{}}
		for _, l := range lc.Locations() {
			lv.Points = append(lv.Points, l.String())
		}
		v.Locations = append(v.Locations, lv)
	}
	for _, info := range issue.DomainSpecificInfo() {
		v.DomainSpecificInfo = append(v.DomainSpecificInfo, info.Name())
	}
	return v
}

// SummaryEntry is one line of the report history.
type SummaryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	File      string    `json:"file"`
	Revision  string    `json:"revision,omitempty"`
	Errors    int       `json:"errors"`
	Warnings  int       `json:"warnings"`
	Infos     int       `json:"infos"`
}

// Entry condenses s into a history entry.
func (s Summary) Entry() SummaryEntry {
	return SummaryEntry{
		Timestamp: s.Timestamp,
		File:      s.File,
		Revision:  s.Revision,
		Errors:    s.Errors,
		Warnings:  s.Warnings,
		Infos:     s.Infos,
	}
}

// DocumentValidation is the outcome of checking a result document without
// normalizing it.
type DocumentValidation struct {
	File       string   `json:"file"`
	Valid      bool     `json:"valid"`
	Issues     int      `json:"issues"`
	Unnumbered int      `json:"unnumbered"`
	Problems   []string `json:"problems,omitempty"`
}
