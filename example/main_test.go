package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"

	"github.com/Feralthedogg/novum-contract/pkg/state"
)

func runDemo(t *testing.T, args ...string) []string {
	t.Helper()
	t.Cleanup(state.Default.Enable)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(append([]string{}, args...))
	require.NoError(t, cmd.Execute())
	return strings.Split(strings.TrimSpace(out.String()), "\n")
}

func TestScenariosEnabled(t *testing.T) {
	lines := runDemo(t)

	require.Len(t, lines, 5)
	assert.True(t, strings.HasSuffix(lines[0], "= 30"))
	assert.True(t, strings.HasSuffix(lines[1], "violation: pre condition"))
	assert.True(t, strings.HasSuffix(lines[2], "violation: post condition"))
	assert.True(t, strings.HasSuffix(lines[3], "violation: invariant"))
	assert.True(t, strings.HasSuffix(lines[4], "violation: pre condition"))
}

func TestScenariosDisabled(t *testing.T) {
	lines := runDemo(t, "--disable")

	require.Len(t, lines, 5)
	assert.True(t, strings.HasSuffix(lines[1], "= 10"))
	assert.True(t, strings.HasSuffix(lines[2], "= 40"))
	assert.True(t, strings.HasSuffix(lines[3], "= 40"))
	assert.True(t, strings.HasSuffix(lines[4], "= -30"))
}

func TestScenariosWithMetricsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contracts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: error
metrics:
  enabled: true
`), 0o644))

	lines := runDemo(t, "--config", path)

	require.Greater(t, len(lines), 5)
	metrics := strings.Join(lines[5:], "\n")
	assert.Contains(t, metrics, "# TYPE novum_contract_violations_total counter")
	assert.Contains(t, metrics, `novum_contract_violations_total{clause="invariant",function="addAndFlag"} 1`)
	assert.Contains(t, metrics, `novum_contract_violations_total{clause="pre condition",function="add"} 2`)
}

func TestConfigDisablesChecks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contracts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("contracts: {enabled: false}\nlogging: {level: error}\n"), 0o644))

	lines := runDemo(t, "-c", path)
	assert.True(t, strings.HasSuffix(lines[4], "= -30"))
}

// keptSpans holds spans past the provider shutdown at the end of run.
type keptSpans struct {
	*tracetest.InMemoryExporter
}

func (keptSpans) Shutdown(context.Context) error { return nil }

func TestScenariosExportViolationSpans(t *testing.T) {
	t.Cleanup(state.Default.Enable)
	path := filepath.Join(t.TempDir(), "contracts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: error
tracing:
  enabled: true
  service_name: contract-demo
`), 0o644))

	exp := keptSpans{tracetest.NewInMemoryExporter()}
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, &options{configPath: path, spanExporter: exp}))

	spans := exp.GetSpans()
	require.Len(t, spans, 4)
	for _, span := range spans {
		assert.Equal(t, "contract.violation", span.Name)
		assert.Equal(t, "contract-demo", span.InstrumentationScope.Name)
	}
}

func TestDisableHoldsAcrossReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contracts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("contracts: {enabled: true}\n"), 0o644))

	sw := state.NewSwitch(true)
	w := newWatcher(&options{configPath: path, disable: true}, sw, zaptest.NewLogger(t))
	assert.False(t, sw.Enabled())

	require.NoError(t, w.Reload())
	assert.False(t, sw.Enabled(), "--disable outlives a reload that enables checks")

	sw = state.NewSwitch(false)
	w = newWatcher(&options{configPath: path}, sw, zaptest.NewLogger(t))
	require.NoError(t, w.Reload())
	assert.True(t, sw.Enabled())
}
