// Copyright 2025 Edgeo SCADA
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

package snmp

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Counter is a simple atomic counter.
type Counter struct {
	value int64
}

// Add adds a value to the counter.
func (c *Counter) Add(delta int64) {
	atomic.AddInt64(&c.value, delta)
}

// Value returns the current counter value.
func (c *Counter) Value() int64 {
	return atomic.LoadInt64(&c.value)
}

// Gauge is a simple atomic gauge that can go up and down.
type Gauge struct {
	value int64
}

// Set sets the gauge value.
func (g *Gauge) Set(value int64) {
	atomic.StoreInt64(&g.value, value)
}

// Add adds a value to the gauge.
func (g *Gauge) Add(delta int64) {
	atomic.AddInt64(&g.value, delta)
}

// Value returns the current gauge value.
func (g *Gauge) Value() int64 {
	return atomic.LoadInt64(&g.value)
}

// PoolMetrics tracks worker pool activity.
type PoolMetrics struct {
	Workers      Gauge
	QueueDepth   Gauge
	TasksRun     Counter
	TasksDropped Counter
}

// AgentMetrics tracks agent request handling, broken out by PDU type,
// plus decode-time rejections and per-request latency.
type AgentMetrics struct {
	GetRequests     Counter
	GetNextRequests Counter
	SetRequests     Counter
	TrapsReceived   Counter
	Responses       Counter
	DecodeErrors    Counter
	CommunityDrops  Counter

	RequestLatency *LatencyHistogram

	StartTime time.Time
}

// NewAgentMetrics creates a fresh AgentMetrics instance.
func NewAgentMetrics() *AgentMetrics {
	return &AgentMetrics{
		RequestLatency: NewLatencyHistogram(),
		StartTime:      time.Now(),
	}
}

// LatencyHistogram tracks request latency distribution in milliseconds.
type LatencyHistogram struct {
	count   Counter
	sum     Counter
	bounds  []int64
	buckets []Counter
}

// NewLatencyHistogram creates a new latency histogram with fixed
// millisecond bounds from 1 to 500 ms plus an overflow bucket. Every
// sub-millisecond observation lands in the first (<= 1 ms) bucket.
func NewLatencyHistogram() *LatencyHistogram {
	return &LatencyHistogram{
		bounds:  []int64{1, 2, 5, 10, 25, 50, 100, 250, 500},
		buckets: make([]Counter, 10),
	}
}

// Observe records one latency observation in milliseconds.
func (h *LatencyHistogram) Observe(latencyMs int64) {
	h.count.Add(1)
	h.sum.Add(latencyMs)

	for i, bound := range h.bounds {
		if latencyMs <= bound {
			h.buckets[i].Add(1)
			return
		}
	}
	h.buckets[len(h.buckets)-1].Add(1)
}

// ObserveDuration records a duration observation.
func (h *LatencyHistogram) ObserveDuration(d time.Duration) {
	h.Observe(d.Milliseconds())
}

// Mean returns the mean observed latency in milliseconds.
func (h *LatencyHistogram) Mean() float64 {
	count := h.count.Value()
	if count == 0 {
		return 0
	}
	return float64(h.sum.Value()) / float64(count)
}

// Collector adapts AgentMetrics and its Pool to a prometheus.Collector,
// exposing the same atomic counters the agent logs from as a /metrics
// scrape target.
type Collector struct {
	agent *AgentMetrics
	pool  *PoolMetrics

	getTotal       *prometheus.Desc
	getNextTotal   *prometheus.Desc
	setTotal       *prometheus.Desc
	trapTotal      *prometheus.Desc
	responseTotal  *prometheus.Desc
	decodeErrTotal *prometheus.Desc
	dropTotal      *prometheus.Desc
	latencyMean    *prometheus.Desc
	queueDepth     *prometheus.Desc
	workers        *prometheus.Desc
	tasksRun       *prometheus.Desc
	tasksDropped   *prometheus.Desc
}

// NewCollector builds a Collector over the given agent and pool metrics.
func NewCollector(agent *AgentMetrics, pool *PoolMetrics) *Collector {
	return &Collector{
		agent:          agent,
		pool:           pool,
		getTotal:       prometheus.NewDesc("snmpagentd_get_requests_total", "Total GetRequest PDUs handled.", nil, nil),
		getNextTotal:   prometheus.NewDesc("snmpagentd_getnext_requests_total", "Total GetNextRequest PDUs handled.", nil, nil),
		setTotal:       prometheus.NewDesc("snmpagentd_set_requests_total", "Total SetRequest PDUs handled.", nil, nil),
		trapTotal:      prometheus.NewDesc("snmpagentd_traps_received_total", "Total Trap PDUs received.", nil, nil),
		responseTotal:  prometheus.NewDesc("snmpagentd_responses_total", "Total GetResponse PDUs sent.", nil, nil),
		decodeErrTotal: prometheus.NewDesc("snmpagentd_decode_errors_total", "Total malformed datagrams dropped.", nil, nil),
		dropTotal:      prometheus.NewDesc("snmpagentd_community_drops_total", "Total requests dropped for a bad community string.", nil, nil),
		latencyMean:    prometheus.NewDesc("snmpagentd_request_latency_ms_mean", "Mean request handling latency in milliseconds.", nil, nil),
		queueDepth:     prometheus.NewDesc("snmpagentd_pool_queue_depth", "Current worker pool queue depth.", nil, nil),
		workers:        prometheus.NewDesc("snmpagentd_pool_workers", "Configured worker pool size.", nil, nil),
		tasksRun:       prometheus.NewDesc("snmpagentd_pool_tasks_run_total", "Total tasks executed by the worker pool.", nil, nil),
		tasksDropped:   prometheus.NewDesc("snmpagentd_pool_tasks_dropped_total", "Total tasks dropped due to a full queue.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.getTotal
	ch <- c.getNextTotal
	ch <- c.setTotal
	ch <- c.trapTotal
	ch <- c.responseTotal
	ch <- c.decodeErrTotal
	ch <- c.dropTotal
	ch <- c.latencyMean
	ch <- c.queueDepth
	ch <- c.workers
	ch <- c.tasksRun
	ch <- c.tasksDropped
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.getTotal, prometheus.CounterValue, float64(c.agent.GetRequests.Value()))
	ch <- prometheus.MustNewConstMetric(c.getNextTotal, prometheus.CounterValue, float64(c.agent.GetNextRequests.Value()))
	ch <- prometheus.MustNewConstMetric(c.setTotal, prometheus.CounterValue, float64(c.agent.SetRequests.Value()))
	ch <- prometheus.MustNewConstMetric(c.trapTotal, prometheus.CounterValue, float64(c.agent.TrapsReceived.Value()))
	ch <- prometheus.MustNewConstMetric(c.responseTotal, prometheus.CounterValue, float64(c.agent.Responses.Value()))
	ch <- prometheus.MustNewConstMetric(c.decodeErrTotal, prometheus.CounterValue, float64(c.agent.DecodeErrors.Value()))
	ch <- prometheus.MustNewConstMetric(c.dropTotal, prometheus.CounterValue, float64(c.agent.CommunityDrops.Value()))
	ch <- prometheus.MustNewConstMetric(c.latencyMean, prometheus.GaugeValue, c.agent.RequestLatency.Mean())

	if c.pool != nil {
		ch <- prometheus.MustNewConstMetric(c.queueDepth, prometheus.GaugeValue, float64(c.pool.QueueDepth.Value()))
		ch <- prometheus.MustNewConstMetric(c.workers, prometheus.GaugeValue, float64(c.pool.Workers.Value()))
		ch <- prometheus.MustNewConstMetric(c.tasksRun, prometheus.CounterValue, float64(c.pool.TasksRun.Value()))
		ch <- prometheus.MustNewConstMetric(c.tasksDropped, prometheus.CounterValue, float64(c.pool.TasksDropped.Value()))
	}
}
