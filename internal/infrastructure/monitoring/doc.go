/*
Package monitoring provides metrics collection for the sender, receiver and
pipeline runner.

# Overview

Each process owns one Metrics value backed by a private Prometheus registry.
The processes are short-lived, so instead of serving an endpoint the
collected values are written once, on exit, to a textfile.

# Metrics

- pipedemo_records_sent_total
- pipedemo_records_processed_total
- pipedemo_stream_errors_total{stage,op}
- pipedemo_record_write_seconds{stage}
- pipedemo_run_duration_seconds{stage}

# Usage

	metrics := monitoring.NewMetrics()

	timer := monitoring.NewTimer(metrics, monitoring.StageSender)
	// ... write and flush one record ...
	timer.Stop()
	metrics.IncSent()

	metrics.MarkDone(monitoring.StageSender)
	_ = metrics.WriteFile(os.Getenv("PIPEDEMO_METRICS_FILE"))
*/
package monitoring
