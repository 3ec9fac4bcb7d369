package observability

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveSync(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("tt", reg)

	m.ObserveSync(1200*time.Millisecond, 4)
	m.ObserveSync(1100*time.Millisecond, 2)

	if got := testutil.ToFloat64(m.Syncs); got != 2 {
		t.Fatalf("syncs_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.LastSyncTasks); got != 2 {
		t.Fatalf("last_sync_tasks = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(m.SyncDuration); got != 1 {
		t.Fatalf("sync_duration_ms series = %d, want 1", got)
	}
}

func TestMetricsUseNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("tt", reg)
	m.TasksCreated.Inc()
	m.ObserveStatusChange("completed")

	want := `
# HELP tt_tasks_created_total Tasks created.
# TYPE tt_tasks_created_total counter
tt_tasks_created_total 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "tt_tasks_created_total"); err != nil {
		t.Fatalf("GatherAndCompare() error = %v", err)
	}
	if got := testutil.ToFloat64(m.StatusChanges.WithLabelValues("completed")); got != 1 {
		t.Fatalf("task_status_changes_total{status=completed} = %v, want 1", got)
	}
}
