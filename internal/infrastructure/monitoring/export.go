package monitoring

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteFile writes the collected metrics to path in the Prometheus text
// exposition format. The file is replaced atomically, which is what the node
// exporter textfile collector expects from short-lived jobs.
func (m *Metrics) WriteFile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
