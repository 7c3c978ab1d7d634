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
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPoolRunsSubmittedTasks(t *testing.T) {
	p := NewPool(WithWorkers(3), WithQueueSize(32))
	p.Start()
	defer p.Stop()

	var count int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		err := p.Submit(func() {
			defer wg.Done()
			atomic.AddInt64(&count, 1)
		})
		require.NoError(t, err)
	}
	wg.Wait()

	require.Equal(t, int64(20), atomic.LoadInt64(&count))
	require.Equal(t, int64(20), p.Metrics().TasksRun.Value())
}

func TestPoolSubmitAfterStopReturnsError(t *testing.T) {
	p := NewPool(WithWorkers(1), WithQueueSize(4))
	p.Start()
	p.Stop()

	err := p.Submit(func() {})
	require.ErrorIs(t, err, ErrPoolStopped)
}

func TestPoolDropsTasksWhenQueueFull(t *testing.T) {
	p := NewPool(WithWorkers(1), WithQueueSize(1))
	p.Start()
	defer p.Stop()

	block := make(chan struct{})
	release := make(chan struct{})

	// Occupy the single worker so the queue backs up.
	require.NoError(t, p.Submit(func() {
		close(block)
		<-release
	}))
	<-block

	// Fill the one-slot queue, then overflow it.
	require.NoError(t, p.Submit(func() {}))
	require.NoError(t, p.Submit(func() {}))

	close(release)
	time.Sleep(10 * time.Millisecond)

	require.Greater(t, p.Metrics().TasksDropped.Value(), int64(0))
}

func TestPoolStopWaitsForInFlightTasks(t *testing.T) {
	p := NewPool(WithWorkers(2), WithQueueSize(4))
	p.Start()

	var finished int32
	require.NoError(t, p.Submit(func() {
		time.Sleep(20 * time.Millisecond)
		atomic.StoreInt32(&finished, 1)
	}))

	p.Stop()
	require.Equal(t, int32(1), atomic.LoadInt32(&finished))
}
