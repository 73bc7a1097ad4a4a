package application_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abdidvp/qcresult/internal/adapters/outbound/config"
	"github.com/abdidvp/qcresult/internal/adapters/outbound/history"
	"github.com/abdidvp/qcresult/internal/adapters/outbound/xqar"
	"github.com/abdidvp/qcresult/internal/application"
	"github.com/abdidvp/qcresult/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../../testdata/results"

type fakeGit struct {
	repo   bool
	hash   string
	queried []string
}

func (g *fakeGit) IsGitRepo(path string) bool {
	g.queried = append(g.queried, path)
	return g.repo
}

func (g *fakeGit) CommitHash(string) (string, error) { return g.hash, nil }

func newService(git domain.GitInfo) *application.ReportService {
	return application.NewReportService(xqar.New(), config.New(), git, history.New())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".qcresult.yaml"), []byte(content), 0644))
	return dir
}

func TestReportService_Summarize(t *testing.T) {
	git := &fakeGit{repo: true, hash: "deadbeef"}
	svc := newService(git)

	summary, err := svc.Summarize(filepath.Join(fixtureDir, "town01.xqar"), t.TempDir(), application.ReportOptions{})
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", summary.Version)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 4, summary.Reported)
	assert.Equal(t, 2, summary.Errors)
	assert.Equal(t, 1, summary.Warnings)
	assert.Equal(t, 1, summary.Infos)
	assert.False(t, summary.Passed())
	assert.Len(t, summary.Issues, 4)
	assert.Empty(t, summary.Skipped)
	assert.False(t, summary.Timestamp.IsZero())

	require.Len(t, summary.Bundles, 1)
	assert.Equal(t, "XodrBundle", summary.Bundles[0].Name)
	assert.Equal(t, "maps/town01.xodr", summary.Bundles[0].InputFile)
	require.Len(t, summary.Bundles[0].Checkers, 2)
	assert.Equal(t, 3, summary.Bundles[0].Checkers[1].IssueCount)

	assert.Equal(t, "deadbeef", summary.Revision)
	require.NotEmpty(t, git.queried)
	assert.Equal(t, filepath.Join(fixtureDir, "maps", "town01.xodr"), git.queried[0])
}

func TestReportService_Summarize_IssueView(t *testing.T) {
	svc := newService(nil)

	summary, err := svc.Summarize(filepath.Join(fixtureDir, "town01.xqar"), t.TempDir(), application.ReportOptions{})
	require.NoError(t, err)

	var lane domain.IssueView
	for _, v := range summary.Issues {
		if v.ID == 2 {
			lane = v
		}
	}
	assert.Equal(t, "Missing lane link", lane.Description)
	assert.Equal(t, "error", lane.Level)
	assert.Equal(t, "RUL-042", lane.RuleUID)
	assert.Equal(t, "laneLinkChecker", lane.Checker)
	assert.Equal(t, "XodrBundle", lane.Bundle)
	assert.Equal(t, "town01.xodr", lane.InputFile)
	assert.Len(t, lane.Locations, 2)
	assert.Equal(t, []string{"RoadLocation"}, lane.DomainSpecificInfo)
}

func TestReportService_Summarize_NoGitRevision(t *testing.T) {
	svc := newService(&fakeGit{repo: false})

	summary, err := svc.Summarize(filepath.Join(fixtureDir, "town01.xqar"), t.TempDir(), application.ReportOptions{})
	require.NoError(t, err)
	assert.Empty(t, summary.Revision)
}

func TestReportService_Summarize_AppliesConfig(t *testing.T) {
	project := writeConfig(t, `
min_level: warning
disabled_rules:
  - RUL-042
level_overrides:
  RUL-050: error
`)
	svc := newService(nil)

	summary, err := svc.Summarize(filepath.Join(fixtureDir, "town01.xqar"), project, application.ReportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 3, summary.Reported)
	assert.Equal(t, 2, summary.Errors, "RUL-050 promoted, RUL-042 disabled")
	assert.Equal(t, 1, summary.Warnings)
	assert.Equal(t, 0, summary.Infos)
	assert.Len(t, summary.Issues, 3)
	for _, v := range summary.Issues {
		assert.NotEqual(t, "RUL-042", v.RuleUID)
	}
}

func TestReportService_Summarize_ShowDisabled(t *testing.T) {
	project := writeConfig(t, "disabled_rules: [RUL-042]\n")
	svc := newService(nil)

	summary, err := svc.Summarize(filepath.Join(fixtureDir, "town01.xqar"), project,
		application.ReportOptions{ShowDisabled: true})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Reported)
	assert.Len(t, summary.Issues, 4)

	var disabled int
	for _, v := range summary.Issues {
		if !v.Enabled {
			disabled++
			assert.Equal(t, "RUL-042", v.RuleUID)
		}
	}
	assert.Equal(t, 1, disabled)
}

func TestReportService_Summarize_MinLevelFlagOverridesConfig(t *testing.T) {
	project := writeConfig(t, "min_level: information\n")
	svc := newService(nil)

	summary, err := svc.Summarize(filepath.Join(fixtureDir, "town01.xqar"), project,
		application.ReportOptions{MinLevel: domain.LevelError})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Reported)
	assert.Equal(t, 0, summary.Warnings)
	assert.Equal(t, 0, summary.Infos)
}

func TestReportService_Summarize_LenientSkipsMalformed(t *testing.T) {
	svc := newService(nil)

	summary, err := svc.Summarize(filepath.Join(fixtureDir, "malformed.xqar"), t.TempDir(), application.ReportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	require.Len(t, summary.Skipped, 1)
	assert.Contains(t, summary.Skipped[0], "laneLinkChecker")

	for _, v := range summary.Issues {
		assert.NotZero(t, v.ID, "unnumbered issues get an id before viewing")
	}
}

func TestReportService_Summarize_StrictFails(t *testing.T) {
	svc := newService(nil)

	_, err := svc.Summarize(filepath.Join(fixtureDir, "malformed.xqar"), t.TempDir(),
		application.ReportOptions{Strict: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestReportService_Summarize_InvalidConfig(t *testing.T) {
	project := writeConfig(t, "min_level: fatal\n")
	svc := newService(nil)

	_, err := svc.Summarize(filepath.Join(fixtureDir, "town01.xqar"), project, application.ReportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestReportService_Summarize_MissingFile(t *testing.T) {
	svc := newService(nil)

	_, err := svc.Summarize(filepath.Join(t.TempDir(), "absent.xqar"), t.TempDir(), application.ReportOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

const unnumbered = `<?xml version="1.0" encoding="UTF-8"?>
<CheckerResults version="1.0.0">
  <CheckerBundle name="XodrBundle">
    <Checker checkerId="laneLinkChecker">
      <Issue id="5" description="first" level="error" ruleUID="RUL-1"/>
      <Issue description="second" level="warning" ruleUID="RUL-2"/>
      <Issue id="2" description="third" level="information" ruleUID="RUL-3"/>
    </Checker>
  </CheckerBundle>
</CheckerResults>
`

func writeResults(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.xqar")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func issueIDs(t *testing.T, path string) []uint64 {
	t.Helper()
	rc, _, err := xqar.New().Load(path, domain.ParseOptions{Strict: true})
	require.NoError(t, err)
	var ids []uint64
	for _, issue := range rc.Issues() {
		ids = append(ids, issue.ID())
	}
	return ids
}

func TestReportService_Renumber_AssignsMissing(t *testing.T) {
	in := writeResults(t, unnumbered)
	out := filepath.Join(t.TempDir(), "out", "numbered.xqar")
	svc := newService(nil)

	n, err := svc.Renumber(in, out, false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []uint64{5, 6, 2}, issueIDs(t, out))

	// input untouched
	assert.Equal(t, []uint64{5, 0, 2}, issueIDs(t, in))
}

func TestReportService_Renumber_ResetInPlace(t *testing.T) {
	in := writeResults(t, unnumbered)
	svc := newService(nil)

	n, err := svc.Renumber(in, "", true)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []uint64{1, 2, 3}, issueIDs(t, in))
}

const exhaustedIDs = `<?xml version="1.0" encoding="UTF-8"?>
<CheckerResults version="1.0.0">
  <CheckerBundle name="XodrBundle">
    <Checker checkerId="laneLinkChecker">
      <Issue id="18446744073709551615" description="last" level="error" ruleUID="RUL-1"/>
      <Issue description="unnumbered" level="warning" ruleUID="RUL-2"/>
    </Checker>
  </CheckerBundle>
</CheckerResults>
`

func TestReportService_Renumber_IDSpaceExhausted(t *testing.T) {
	in := writeResults(t, exhaustedIDs)
	out := filepath.Join(t.TempDir(), "out.xqar")
	svc := newService(nil)

	_, err := svc.Renumber(in, out, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIDSpaceExhausted)
	assert.NoFileExists(t, out)

	_, err = svc.Summarize(in, t.TempDir(), application.ReportOptions{})
	assert.ErrorIs(t, err, domain.ErrIDSpaceExhausted)

	n, err := svc.Renumber(in, out, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []uint64{1, 2}, issueIDs(t, out))
}

func TestReportService_Renumber_RejectsMalformed(t *testing.T) {
	svc := newService(nil)

	_, err := svc.Renumber(filepath.Join(fixtureDir, "malformed.xqar"), filepath.Join(t.TempDir(), "out.xqar"), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestReportService_Validate(t *testing.T) {
	svc := newService(nil)

	v, err := svc.Validate(filepath.Join(fixtureDir, "malformed.xqar"))
	require.NoError(t, err)
	assert.False(t, v.Valid)
	assert.Equal(t, 2, v.Issues)
	assert.Equal(t, 1, v.Unnumbered)
	require.Len(t, v.Problems, 1)
	assert.Contains(t, v.Problems[0], "fatal")

	v, err = svc.Validate(filepath.Join(fixtureDir, "town01.xqar"))
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.Equal(t, 4, v.Issues)
	assert.Empty(t, v.Problems)
}

func TestReportService_RecordAndHistory(t *testing.T) {
	project := t.TempDir()
	svc := newService(nil)

	summary, err := svc.Summarize(filepath.Join(fixtureDir, "town01.xqar"), project, application.ReportOptions{})
	require.NoError(t, err)
	require.NoError(t, svc.Record(project, summary))
	require.NoError(t, svc.Record(project, summary))

	entries, err := svc.History(project)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 2, entries[0].Errors)
	assert.Equal(t, summary.File, entries[1].File)
}

func TestReportService_NilHistory(t *testing.T) {
	svc := application.NewReportService(xqar.New(), config.New(), nil, nil)

	require.NoError(t, svc.Record(t.TempDir(), &domain.Summary{}))
	entries, err := svc.History(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNormalize(t *testing.T) {
	rc, _, err := xqar.New().Load(filepath.Join(fixtureDir, "town01.xqar"), domain.ParseOptions{Strict: true})
	require.NoError(t, err)

	cfg := domain.ReportConfig{
		MinLevel:       domain.LevelWarning,
		LevelOverrides: map[string]domain.IssueLevel{"RUL-061": domain.LevelInfo},
	}
	require.NoError(t, application.Normalize(rc, cfg))

	junction := rc.IssueByID(4)
	require.NotNil(t, junction)
	assert.Equal(t, domain.LevelInfo, junction.Level())
	assert.False(t, junction.Enabled(), "demoted below min_level")

	lane := rc.IssueByID(2)
	assert.True(t, lane.Enabled())
	assert.Equal(t, domain.LevelError, lane.Level())
}
