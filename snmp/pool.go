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
	"log/slog"
	"sync"
)

// Task is a unit of work submitted to a Pool: decode, look up, encode,
// and send one datagram.
type Task func()

// Pool is a bounded worker pool that fans incoming datagrams out across
// a fixed number of goroutines, so one slow lookup cannot stall the
// receive loop behind it.
type Pool struct {
	opts    *PoolOptions
	tasks   chan Task
	logger  *slog.Logger
	metrics *PoolMetrics
	wg      sync.WaitGroup

	mu      sync.Mutex
	running bool
}

// NewPool creates a worker pool. Call Start before submitting tasks.
func NewPool(opts ...PoolOption) *Pool {
	options := NewPoolOptions()
	for _, opt := range opts {
		opt(options)
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pool{
		opts:    options,
		logger:  logger,
		metrics: &PoolMetrics{},
	}
}

// Start launches the configured number of worker goroutines.
func (p *Pool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}

	p.tasks = make(chan Task, p.opts.QueueSize)
	p.running = true
	p.metrics.Workers.Set(int64(p.opts.Workers))

	for i := 0; i < p.opts.Workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker drains tasks until the channel is closed and empty, so a
// pending burst is fully processed before Stop returns.
func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.metrics.QueueDepth.Add(-1)
		p.metrics.TasksRun.Add(1)
		task()
	}
}

// Submit enqueues a task for execution by a worker. It returns
// ErrPoolStopped if the pool has been stopped, and silently drops the
// task (incrementing TasksDropped) if the bounded queue is full, so a
// burst of traffic degrades rather than blocking the receive loop.
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	running := p.running
	tasks := p.tasks
	p.mu.Unlock()

	if !running {
		return ErrPoolStopped
	}

	p.metrics.QueueDepth.Add(1)
	select {
	case tasks <- task:
		return nil
	default:
		p.metrics.QueueDepth.Add(-1)
		p.metrics.TasksDropped.Add(1)
		p.logger.Warn("task queue full, dropping datagram")
		return nil
	}
}

// Stop drains in-flight workers and blocks until all have exited.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}

// Metrics returns the pool's metrics.
func (p *Pool) Metrics() *PoolMetrics {
	return p.metrics
}
