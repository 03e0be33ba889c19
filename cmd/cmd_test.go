package cmd_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendev-labs/auto-notion/cmd"
	"github.com/opendev-labs/auto-notion/internal/domain"
	"github.com/opendev-labs/auto-notion/internal/planner"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	root := cmd.NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "absent.yml")}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "auto-notion version "+cmd.Version+"\n", out)
}

func TestStrategies_JSON(t *testing.T) {
	out, err := run(t, "", "strategies", "--json")
	require.NoError(t, err)

	var strategies []domain.ContentStrategy
	require.NoError(t, json.Unmarshal([]byte(out), &strategies))
	assert.Len(t, strategies, 7)
}

func TestStrategies_Table(t *testing.T) {
	out, err := run(t, "", "strategies")
	require.NoError(t, err)
	assert.Contains(t, out, "MythicWisdom")
	assert.Contains(t, out, "CrystalEnergy")
}

func TestPlan_SeededIsReproducible(t *testing.T) {
	first, err := run(t, "", "plan", "--page", "MythicWisdom", "--days", "2", "--seed", "99")
	require.NoError(t, err)
	second, err := run(t, "", "plan", "--page", "MythicWisdom", "--days", "2", "--seed", "99")
	require.NoError(t, err)

	assert.JSONEq(t, first, second)

	var plan planner.Plan
	require.NoError(t, json.Unmarshal([]byte(first), &plan))
	assert.Len(t, plan.Items, 6)
	require.NotNil(t, plan.Seed)
	assert.Equal(t, uint64(99), *plan.Seed)
}

func TestPlan_InvalidDays(t *testing.T) {
	_, err := run(t, "", "plan", "--days", "0")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDays)
}

func TestAudit_Args(t *testing.T) {
	out, err := run(t, "", "audit", "hate", "fear", "anger")
	require.NoError(t, err)

	var resp struct {
		Result      domain.AuditResult `json:"result"`
		Suggestions []string           `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 0, resp.Result.Score)
	assert.NotEmpty(t, resp.Suggestions)
}

func TestAudit_Stdin(t *testing.T) {
	out, err := run(t,
		"Awaken your consciousness and integrate divine wisdom into daily life with clarity and truth.\n",
		"audit")
	require.NoError(t, err)
	assert.Contains(t, out, `"score": 100`)
	assert.Contains(t, out, `"passed": true`)
}

func TestAudit_ReportFromStdin(t *testing.T) {
	stdin := "Awaken your consciousness and integrate divine wisdom into daily life with clarity and truth.\n\nhate fear anger\n"
	out, err := run(t, stdin, "audit", "--report")
	require.NoError(t, err)

	var report domain.ComplianceReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.PassedCount)
	assert.Equal(t, 1, report.FailedCount)
}

func TestAudit_ReportLongLine(t *testing.T) {
	long := strings.Repeat("integrate divine wisdom with clarity ", 3000)
	out, err := run(t, long+"\nhate fear anger\n", "audit", "--report")
	require.NoError(t, err)

	var report domain.ComplianceReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.PassedCount+report.FailedCount)
}

func TestAudit_EmptyReport(t *testing.T) {
	_, err := run(t, "", "audit", "--report")
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)
}

func TestTiming_JSON(t *testing.T) {
	out, err := run(t, "", "timing", "--days", "1", "--json")
	require.NoError(t, err)

	var resp struct {
		Timing  planner.TimingSnapshot `json:"timing"`
		Windows []domain.CosmicWindow  `json:"windows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.NotEmpty(t, resp.Timing.Phase.Name)
	assert.GreaterOrEqual(t, len(resp.Windows), 2)
}

func TestTiming_InvalidDays(t *testing.T) {
	_, err := run(t, "", "timing", "--days", "400")
	assert.ErrorIs(t, err, domain.ErrInvalidDays)
}

func TestMigrate_RejectsUnknownDirection(t *testing.T) {
	_, err := run(t, "", "migrate", "sideways")
	require.Error(t, err)
}

func TestPlan_WritesXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.xlsx")

	out, err := run(t, "", "plan", "--days", "1", "--seed", "5", "--xlsx", path)
	require.NoError(t, err)
	assert.Equal(t, "Wrote 3 items for MythicWisdom to "+path+"\n", out)
	assert.FileExists(t, path)
}
