package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SetupPrometheus returns a private registry carrying the build info.
// Go runtime and process collectors are left out: a single CLI invocation
// is too short lived for them to mean anything in a textfile.
func SetupPrometheus() *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewBuildInfoCollector())
	return promRegistry
}

// WriteTextfile dumps the gathered metrics in the text exposition format,
// for the node exporter textfile collector.
func WriteTextfile(gatherer prometheus.Gatherer, path string) error {
	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
