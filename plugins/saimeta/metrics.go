// Copyright (c) 2018 Cisco and/or its affiliates.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at:
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package saimeta

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

// Set of raw Prometheus metrics.
// Labels
// * operation
// * object_type
// * result
// Do not increment directly, use report* methods.
var (
	operationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ligato",
		Subsystem: "saimeta",
		Name:      "operations_total",
		Help:      "The total number of API operations by result.",
	},
		[]string{"operation", "object_type", "result"},
	)
	rollbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ligato",
		Subsystem: "saimeta",
		Name:      "rollbacks_total",
		Help:      "The total number of local changes reverted after backend failure.",
	},
		[]string{"operation"},
	)
	operationDurationSec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ligato",
		Subsystem: "saimeta",
		Name:      "operation_duration_seconds",
		Help:      "Bucketed histogram of processing time of API operations.",
		// lowest bucket start of upper bound 0.00005 sec (50 us) with factor 2
		// highest bucket start of 0.00005 sec * 2^14 == 0.8192 sec
		Buckets: prometheus.ExponentialBuckets(0.00005, 2, 15),
	},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(operationsTotal)
	prometheus.MustRegister(rollbacksTotal)
	prometheus.MustRegister(operationDurationSec)
}

func reportOperation(op api.Operation, objectType sai.ObjectType, err error, took time.Duration) {
	result := "Success"
	if err != nil {
		if kind := api.KindOf(err); kind != 0 {
			result = kind.String()
		} else {
			result = "Failure"
		}
	}
	operationsTotal.WithLabelValues(string(op), objectType.String(), result).Inc()
	operationDurationSec.WithLabelValues(string(op)).Observe(took.Seconds())
}

func reportRollback(op api.Operation) {
	rollbacksTotal.WithLabelValues(string(op)).Inc()
}

// trackOperation starts measuring one public call. The returned function
// is called when the call finishes, with the key of the object (known only
// after the call for creates) and the result.
func (m *Meta) trackOperation(op api.Operation, objectType sai.ObjectType, attrs []sai.Attribute) func(sai.ObjectKey, error) {
	start := time.Now()
	done := m.calls.Track(string(op))
	return func(key sai.ObjectKey, err error) {
		done(err != nil)
		reportOperation(op, objectType, err, time.Since(start))
		if m.Recorder != nil {
			m.Recorder.Record(op, objectType, key, attrs, err)
		}
		if err != nil {
			m.Log.WithFields(map[string]interface{}{
				"operation":  op,
				"objectType": objectType,
				"key":        keyString(key),
			}).Debugf("call failed: %v", err)
		}
		if m.config.EnableConsistencyChecks && isMutating(op) {
			m.mustBeConsistent(op)
		}
	}
}

func isMutating(op api.Operation) bool {
	switch op {
	case api.OpCreate, api.OpRemove, api.OpSet, api.OpBulkCreate, api.OpBulkRemove,
		api.OpBulkSet, api.OpFlushFdb, api.OpNotification, api.OpGet:
		return true
	}
	return false
}

func keyString(key sai.ObjectKey) string {
	if key == nil {
		return ""
	}
	return key.String()
}
