package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/abdidvp/qcresult/internal/adapters/inbound/cli"
	"github.com/abdidvp/qcresult/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../../../../testdata/results"

var (
	townFixture      = filepath.Join(fixtureDir, "town01.xqar")
	malformedFixture = filepath.Join(fixtureDir, "malformed.xqar")
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "qcresult dev")
}

func TestShowCommand_DefaultTUI(t *testing.T) {
	out, err := run(t, "show", townFixture, "--path", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "qcresult")
	assert.Contains(t, out, "Missing lane link")
	assert.Contains(t, out, "Lane Link Checker")
}

func TestShowCommand_JSON(t *testing.T) {
	out, err := run(t, "show", townFixture, "--json", "--path", t.TempDir())
	require.NoError(t, err)

	var summary domain.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Errors)
	assert.Len(t, summary.Issues, 4)
}

func TestShowCommand_MinLevel(t *testing.T) {
	out, err := run(t, "show", townFixture, "--json", "--min-level", "error", "--path", t.TempDir())
	require.NoError(t, err)

	var summary domain.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 2, summary.Reported)
	assert.Len(t, summary.Issues, 2)
}

func TestShowCommand_BadMinLevel(t *testing.T) {
	_, err := run(t, "show", townFixture, "--min-level", "fatal", "--path", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--min-level")
}

func TestShowCommand_CIFails(t *testing.T) {
	_, err := run(t, "show", townFixture, "--ci", "--path", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 error-level issues")
}

func TestShowCommand_CIPassesWithDisabledRules(t *testing.T) {
	project := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(project, ".qcresult.yaml"),
		[]byte("disabled_rules: [RUL-042, RUL-061]\n"), 0644))

	_, err := run(t, "show", townFixture, "--ci", "--path", project)
	assert.NoError(t, err)
}

func TestShowCommand_SingleIssue(t *testing.T) {
	out, err := run(t, "show", townFixture, "--issue", "2", "--path", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Issue #2")
	assert.Contains(t, out, "lane without successor")
	assert.Contains(t, out, "RoadLocation")
}

func TestShowCommand_SingleIssueNotFound(t *testing.T) {
	_, err := run(t, "show", townFixture, "--issue", "99", "--path", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issue 99 not found")
}

func TestShowCommand_Strict(t *testing.T) {
	_, err := run(t, "show", malformedFixture, "--strict", "--path", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestShowCommand_RecordAndHistory(t *testing.T) {
	project := t.TempDir()

	_, err := run(t, "show", townFixture, "--record", "--json", "--path", project)
	require.NoError(t, err)

	out, err := run(t, "history", "--json", "--path", project)
	require.NoError(t, err)

	var entries []domain.SummaryEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Errors)
}

func TestHistoryCommand_Empty(t *testing.T) {
	out, err := run(t, "history", "--path", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No report history found.")
}

func TestIssuesCommand(t *testing.T) {
	out, err := run(t, "issues", townFixture, "--path", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "RULE")
	assert.Contains(t, out, "RUL-042")
	assert.Contains(t, out, "laneLinkChecker")
}
