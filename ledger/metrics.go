// Copyright 2025 Blink Labs Software
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

package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
)

type operationMetrics struct {
	operations *prometheus.CounterVec
}

// newOperationMetrics builds the per-program operation counters. The
// program name is applied as a wrapped label so multiple engines can
// share one registry without collisions.
func newOperationMetrics(
	program string,
	promRegistry prometheus.Registerer,
) *operationMetrics {
	m := &operationMetrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airdrop_ledger_operations_total",
				Help: "total ledger operations by operation and status",
			},
			[]string{"operation", "status"},
		),
	}
	if promRegistry != nil {
		prometheus.WrapRegistererWith(
			prometheus.Labels{"program": program},
			promRegistry,
		).MustRegister(m.operations)
	}
	return m
}

func (m *operationMetrics) observe(operation string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.operations.WithLabelValues(operation, status).Inc()
}
