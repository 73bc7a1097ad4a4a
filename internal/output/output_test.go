package output

import (
	"bytes"
	"testing"

	"github.com/abdidvp/qcresult/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUI() (*UI, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &UI{Out: out, ErrOut: errOut}, out, errOut
}

func TestInfo(t *testing.T) {
	u, out, _ := newTestUI()
	u.Info("loaded %s", "town01.xqar")
	assert.Contains(t, out.String(), "loaded town01.xqar")
}

func TestSuccess(t *testing.T) {
	u, out, _ := newTestUI()
	u.Success("numbered %d issues", 3)
	assert.Contains(t, out.String(), "numbered 3 issues")
}

func TestWarning(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Warning("skipped %d", 1)
	assert.Contains(t, errOut.String(), "skipped 1")
}

func TestError(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Error("failed %s", "badly")
	assert.Contains(t, errOut.String(), "failed badly")
}

func TestVerboseLog(t *testing.T) {
	u, out, _ := newTestUI()
	u.VerboseLog("hidden")
	assert.Empty(t, out.String())

	u.Verbose = true
	u.VerboseLog("detail %d", 1)
	assert.Contains(t, out.String(), "detail 1")
}

func TestLevelColor(t *testing.T) {
	assert.Contains(t, LevelColor("error"), "error")
	assert.Contains(t, LevelColor("information"), "information")
	assert.Equal(t, "bogus", LevelColor("bogus"))
}

func TestIssueTable(t *testing.T) {
	u, out, _ := newTestUI()
	err := u.IssueTable([]domain.IssueView{
		{ID: 2, Level: "error", RuleUID: "RUL-042", Checker: "laneLinkChecker", Description: "Missing lane link", Enabled: true},
		{ID: 3, Level: "information", RuleUID: "RUL-050", Checker: "laneLinkChecker", Description: "Lane width below 0.5 m"},
	})
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "RULE")
	assert.Contains(t, s, "RUL-042")
	assert.Contains(t, s, "Missing lane link")
	assert.Contains(t, s, "(disabled)")
}
