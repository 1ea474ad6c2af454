package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	registry := NewRegistry(reg)

	if registry == nil {
		t.Fatal("NewRegistry returned nil")
	}

	// Exercise one collector of each kind so registration is verified.
	registry.TasksSubmitted.WithLabelValues("test").Inc()
	registry.PoolSize.WithLabelValues("test").Set(4)
	registry.TaskExecutionDuration.WithLabelValues("test").Observe(0.01)
	registry.ScheduledRuns.WithLabelValues("test").Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	want := map[string]bool{
		"gosteal_pool_tasks_submitted_total": false,
		"gosteal_pool_size":                  false,
		"gosteal_pool_task_duration_seconds": false,
		"gosteal_scheduler_runs_total":       false,
	}
	for _, mf := range families {
		if _, ok := want[mf.GetName()]; ok {
			want[mf.GetName()] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("metric %s not registered", name)
		}
	}
}

func TestNewRegistryWithNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	registry := NewRegistryWithNamespace(reg, "myapp")

	registry.TasksSubmitted.WithLabelValues("test").Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	found := false
	for _, mf := range families {
		if mf.GetName() == "myapp_pool_tasks_submitted_total" {
			found = true
		}
	}
	if !found {
		t.Error("metric not registered under custom namespace")
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if !config.Enabled {
		t.Error("default config should be enabled")
	}
	if config.Registry != prometheus.DefaultRegisterer {
		t.Error("default config should use the default registerer")
	}
	if config.Namespace != "gosteal" {
		t.Errorf("Namespace = %q, want %q", config.Namespace, "gosteal")
	}
}
