package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/chitai-gorod-qa/tools/dashgen/dashboards"
	"github.com/donaldgifford/chitai-gorod-qa/tools/dashgen/rules"
)

func TestDefaultConfigValid(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate_EmptyOutputDir(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "", DashboardEnabled: true}
	assert.Error(t, cfg.Validate())
}

func TestConfigValidate_NothingEnabled(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "/tmp", DashboardEnabled: false, RulesEnabled: false}
	assert.Error(t, cfg.Validate())
}

func TestBuildOverviewDashboard(t *testing.T) {
	t.Parallel()

	dash, err := dashboards.BuildOverview().Build()
	require.NoError(t, err)

	require.NotNil(t, dash.Uid)
	assert.Equal(t, "chitai-qa-overview", *dash.Uid)

	require.NotNil(t, dash.Title)
	assert.Equal(t, "Chitai QA Overview", *dash.Title)

	require.NotNil(t, dash.Templating)
	assert.Len(t, dash.Templating.List, 1)
	assert.Equal(t, "datasource", dash.Templating.List[0].Name)

	assert.Len(t, dash.Panels, 5)

	totalPanels := 0
	for _, p := range dash.Panels {
		if p.RowPanel != nil {
			totalPanels += len(p.RowPanel.Panels)
		}
	}
	assert.Equal(t, 18, totalPanels)
}

func TestRecordingRules(t *testing.T) {
	t.Parallel()

	cr := rules.RecordingRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "chitai-qa-recording-rules", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "chitai-qa-recording", group.Name)

	expectedRecords := []string{
		"chitai:http_requests:rate5m",
		"chitai:http_errors:rate5m",
		"chitai:api_requests:rate5m",
		"chitai:api_errors:rate5m",
		"chitai:smoke_failed_runs:increase1h",
	}
	require.Len(t, group.Rules, len(expectedRecords))
	for i, rule := range group.Rules {
		assert.Equal(t, expectedRecords[i], rule.Record)
		assert.True(t, KnownMetrics[rule.Record], "%s missing from KnownMetrics", rule.Record)
	}

	data, err := yaml.Marshal(cr)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiVersion: monitoring.coreos.com/v1")
}

func TestAlertRules(t *testing.T) {
	t.Parallel()

	cr := rules.AlertRules()
	assert.Equal(t, "chitai-qa-alerts", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]

	expectedAlerts := []string{
		"ChitaiQADown",
		"ChitaiQAReadinessDown",
		"ChitaiSmokeFailing",
		"ChitaiSmokeStale",
		"ChitaiAPIErrorRate",
		"ChitaiAPIWindowExhausted",
		"ChitaiTokenFailures",
		"ChitaiNotificationFailures",
	}
	require.Len(t, group.Rules, len(expectedAlerts))
	for i, rule := range group.Rules {
		assert.Equal(t, expectedAlerts[i], rule.Alert)
		assert.NotEmpty(t, rule.Labels["severity"], "alert %s missing severity", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["summary"], "alert %s missing summary", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["description"], "alert %s missing description", rule.Alert)
	}
}

func TestArtifacts_Validate(t *testing.T) {
	t.Parallel()

	files, err := artifacts(DefaultConfig())
	require.NoError(t, err)
	require.Len(t, files, 3)

	res := check(files)
	assert.True(t, res.Ok(), "validation errors: %v", res.Errors)
	assert.Empty(t, res.Warnings, "unexpected warnings: %v", res.Warnings)
}

func TestArtifacts_RulesOnly(t *testing.T) {
	t.Parallel()

	files, err := artifacts(Config{OutputDir: "x", RulesEnabled: true})
	require.NoError(t, err)
	assert.NotContains(t, files, dashboardPath)
	assert.Contains(t, files, recordingPath)
	assert.Contains(t, files, alertsPath)
}

func TestRun_WritesArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, run(Config{OutputDir: dir, DashboardEnabled: true, RulesEnabled: true}, false))

	want, err := artifacts(DefaultConfig())
	require.NoError(t, err)

	for rel, data := range want {
		got, err := os.ReadFile(filepath.Join(dir, rel))
		require.NoError(t, err, "missing %s", rel)
		assert.Equal(t, string(data), string(got), "%s differs between runs", rel)
	}

	alerts, err := os.ReadFile(filepath.Join(dir, alertsPath))
	require.NoError(t, err)
	assert.Contains(t, string(alerts), generatedHeader)
}

func TestRun_ValidateOnlyWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, run(Config{OutputDir: dir, DashboardEnabled: true, RulesEnabled: true}, true))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
