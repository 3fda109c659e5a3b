// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package runner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Run metrics
	runTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arctl_run_total",
			Help: "Total number of playbook and role runs",
		},
		[]string{"status"}, // successful, failed, timeout, canceled or error
	)

	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "arctl_run_duration_seconds",
			Help:    "Duration of playbook and role runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600, 1800},
		},
	)

	// Engine command metrics
	commandTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arctl_command_total",
			Help: "Total number of engine command executions",
		},
		[]string{"executable", "outcome"},
	)

	commandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "arctl_command_duration_seconds",
			Help:    "Duration of engine command executions in seconds",
			Buckets: []float64{0.1, 1, 5, 30, 60, 300, 900},
		},
		[]string{"executable"},
	)
)

// WriteMetrics writes the collected metrics to path in the Prometheus text
// exposition format, for the node-exporter textfile collector.
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
