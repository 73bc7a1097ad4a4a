package application

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/abdidvp/qcresult/internal/domain"
)

// ReportService orchestrates the report pipeline:
// load config → parse result document → normalize issues → build summary.
type ReportService struct {
	store        domain.ResultStore
	configLoader domain.ConfigLoader
	git          domain.GitInfo
	history      domain.SummaryHistory
	now          func() time.Time
}

// NewReportService wires the service. git and history may be nil, which turns
// off revision lookup and history recording.
func NewReportService(
	store domain.ResultStore,
	configLoader domain.ConfigLoader,
	git domain.GitInfo,
	history domain.SummaryHistory,
) *ReportService {
	return &ReportService{
		store:        store,
		configLoader: configLoader,
		git:          git,
		history:      history,
		now:          time.Now,
	}
}

// ReportOptions carries command line overrides. Set values win over the
// config file.
type ReportOptions struct {
	Strict       bool
	MinLevel     domain.IssueLevel
	ShowDisabled bool
}

// Config loads the project config and overlays opts.
func (s *ReportService) Config(projectPath string, opts ReportOptions) (domain.ReportConfig, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return domain.ReportConfig{}, fmt.Errorf("loading config: %w", err)
	}
	if opts.Strict {
		cfg.Strict = true
	}
	if opts.MinLevel != 0 {
		cfg.MinLevel = opts.MinLevel
	}
	if opts.ShowDisabled {
		cfg.ShowDisabled = true
	}
	return cfg, nil
}

// Load parses a result document and applies cfg to its issues.
func (s *ReportService) Load(resultPath string, cfg domain.ReportConfig) (*domain.ResultContainer, *domain.ParseReport, error) {
	rc, report, err := s.store.Load(resultPath, domain.ParseOptions{Strict: cfg.Strict})
	if err != nil {
		return nil, nil, err
	}
	if err := Normalize(rc, cfg); err != nil {
		return nil, nil, fmt.Errorf("applying config: %w", err)
	}
	return rc, report, nil
}

// Summarize loads resultPath with the config of projectPath and returns the
// reportable summary.
func (s *ReportService) Summarize(resultPath, projectPath string, opts ReportOptions) (*domain.Summary, error) {
	// 0. Load config
	cfg, err := s.Config(projectPath, opts)
	if err != nil {
		return nil, err
	}

	// 1. Parse and normalize
	rc, report, err := s.Load(resultPath, cfg)
	if err != nil {
		return nil, err
	}

	// 2. Number issues that came without an id so views are addressable
	if _, err := rc.AssignIssueIDs(); err != nil {
		return nil, fmt.Errorf("numbering issues: %w", err)
	}

	// 3. Build summary
	summary := BuildSummary(rc, cfg.ShowDisabled)
	summary.File = resultPath
	summary.Timestamp = s.now().UTC()
	for _, sk := range report.Skipped {
		summary.Skipped = append(summary.Skipped, sk.Error())
	}
	summary.Revision = s.revision(resultPath, rc)

	return summary, nil
}

// Normalize normalizes issues in place: level overrides are applied first,
// then issues of disabled rules or below min_level are disabled.
func Normalize(rc *domain.ResultContainer, cfg domain.ReportConfig) error {
	for _, issue := range rc.Issues() {
		if lvl, ok := cfg.LevelOverrides[issue.RuleUID()]; ok {
			if err := issue.SetLevel(lvl); err != nil {
				return fmt.Errorf("rule %s: %w", issue.RuleUID(), err)
			}
		}
		if cfg.IsRuleDisabled(issue.RuleUID()) || !cfg.Reports(issue.Level()) {
			issue.SetEnabled(false)
		}
	}
	return nil
}

// BuildSummary counts enabled issues per level and lists issue views. With
// showDisabled, disabled issues are listed too but still not counted.
func BuildSummary(rc *domain.ResultContainer, showDisabled bool) *domain.Summary {
	counts := rc.CountByLevel(true)
	summary := &domain.Summary{
		Version:  rc.Version(),
		Total:    rc.IssueCount(),
		Errors:   counts[domain.LevelError],
		Warnings: counts[domain.LevelWarning],
		Infos:    counts[domain.LevelInfo],
		Bundles:  []domain.BundleView{},
		Issues:   []domain.IssueView{},
	}
	summary.Reported = summary.Errors + summary.Warnings + summary.Infos

	for _, b := range rc.Bundles() {
		bv := domain.BundleView{
			Name:      b.Name(),
			Version:   b.Version(),
			InputFile: b.Param("InputFile"),
			Checkers:  []domain.CheckerView{},
		}
		for _, c := range b.Checkers() {
			bv.Checkers = append(bv.Checkers, domain.CheckerView{
				ID:          c.ID(),
				Description: c.Description(),
				Status:      string(c.Status()),
				IssueCount:  c.IssueCount(),
			})
		}
		summary.Bundles = append(summary.Bundles, bv)
	}

	for _, issue := range rc.Issues() {
		if !issue.Enabled() && !showDisabled {
			continue
		}
		summary.Issues = append(summary.Issues, domain.NewIssueView(issue))
	}
	return summary
}

// revision returns the commit of the first checked input file that lives in a
// git work tree.
func (s *ReportService) revision(resultPath string, rc *domain.ResultContainer) string {
	if s.git == nil {
		return ""
	}
	for _, b := range rc.Bundles() {
		input := b.Param("InputFile")
		if input == "" {
			continue
		}
		if !filepath.IsAbs(input) {
			input = filepath.Join(filepath.Dir(resultPath), input)
		}
		if !s.git.IsGitRepo(input) {
			continue
		}
		if hash, err := s.git.CommitHash(input); err == nil {
			return hash
		}
	}
	return ""
}

// Renumber gives ids to unnumbered issues, or to all issues when reset is
// set, and writes the document to out (or back to in). It returns how many
// issues were numbered.
func (s *ReportService) Renumber(in, out string, reset bool) (int, error) {
	rc, _, err := s.store.Load(in, domain.ParseOptions{Strict: true})
	if err != nil {
		return 0, err
	}

	var n int
	if reset {
		rc.RenumberIssues()
		n = rc.IssueCount()
	} else if n, err = rc.AssignIssueIDs(); err != nil {
		return 0, fmt.Errorf("numbering issues: %w", err)
	}

	if out == "" {
		out = in
	}
	if err := s.store.Save(out, rc); err != nil {
		return 0, fmt.Errorf("saving results: %w", err)
	}
	return n, nil
}

// Validate parses the document leniently and reports every malformed issue
// instead of stopping at the first.
func (s *ReportService) Validate(resultPath string) (*domain.DocumentValidation, error) {
	rc, report, err := s.store.Load(resultPath, domain.ParseOptions{})
	if err != nil {
		return nil, err
	}

	v := &domain.DocumentValidation{
		File:       resultPath,
		Valid:      len(report.Skipped) == 0,
		Issues:     rc.IssueCount(),
		Unnumbered: report.Unnumbered,
	}
	for _, sk := range report.Skipped {
		v.Problems = append(v.Problems, sk.Error())
	}
	return v, nil
}

// Record appends summary to the project's history.
func (s *ReportService) Record(projectPath string, summary *domain.Summary) error {
	if s.history == nil {
		return nil
	}
	if err := s.history.Save(projectPath, summary.Entry()); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

// History returns the recorded summaries of a project, oldest first.
func (s *ReportService) History(projectPath string) ([]domain.SummaryEntry, error) {
	if s.history == nil {
		return nil, nil
	}
	entries, err := s.history.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return entries, nil
}
