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
	"net"
	"sync"
	"time"
)

// State is the lifecycle state of an Agent.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopping
	StateStopped
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Error statuses, per RFC 1157 §4.1.1.
const (
	ErrStatusNoError      = 0
	ErrStatusTooBig       = 1
	ErrStatusNoSuchName   = 2
	ErrStatusBadValue     = 3
	ErrStatusReadOnly     = 4
	ErrStatusGenErr       = 5
)

// Agent is an SNMPv1 listener/dispatcher: it binds one UDP socket,
// decodes each datagram, answers Get/GetNext/Set requests against a
// Store, and fans the work out across a worker Pool so a slow lookup
// never blocks the receive loop behind it.
type Agent struct {
	opts    *AgentOptions
	store   Store
	pool    *Pool
	logger  *slog.Logger
	metrics *AgentMetrics

	mu        sync.Mutex
	state     State
	transport *transport
	wg        sync.WaitGroup
}

// NewAgent creates an Agent. The agent does not bind its socket or
// start its workers until Start is called.
func NewAgent(opts ...AgentOption) *Agent {
	options := NewAgentOptions()
	for _, opt := range opts {
		opt(options)
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store := options.Store
	if store == nil {
		store = NewMemoryStoreFromSeed(DefaultSeed("snmpagentd", "", "", ""))
	}

	metrics := options.Metrics
	if metrics == nil {
		metrics = NewAgentMetrics()
	}

	if options.CommunityAcceptor == nil {
		options.CommunityAcceptor = AcceptAnyCommunity
	}

	poolOpts := append([]PoolOption{WithPoolLogger(logger)}, options.PoolOptions...)

	return &Agent{
		opts:    options,
		store:   store,
		pool:    NewPool(poolOpts...),
		logger:  logger,
		metrics: metrics,
		state:   StateIdle,
	}
}

// Store returns the agent's backing MIB store.
func (a *Agent) Store() Store {
	return a.store
}

// Metrics returns the agent's request metrics.
func (a *Agent) Metrics() *AgentMetrics {
	return a.metrics
}

// PoolMetrics returns the worker pool's metrics.
func (a *Agent) PoolMetrics() *PoolMetrics {
	return a.pool.Metrics()
}

// State reports the agent's current lifecycle state.
func (a *Agent) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Start binds the UDP socket, starts the worker pool, and launches the
// receive loop. Returns ErrAlreadyRunning if called while running.
func (a *Agent) Start() error {
	a.mu.Lock()
	if a.state == StateRunning || a.state == StateStopping {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}

	t, err := bindTransport(a.opts.Address)
	if err != nil {
		a.mu.Unlock()
		return err
	}

	a.transport = t
	a.state = StateRunning
	a.mu.Unlock()

	a.pool.Start()

	a.logger.Info("agent started", "address", t.localAddr().String(), "community", a.opts.Community)

	a.wg.Add(1)
	go a.receiveLoop()

	return nil
}

// Stop transitions the agent through Stopping to Stopped: it closes
// the socket to unblock the receive loop, waits for it to exit, then
// drains the worker pool. Safe to call once; returns ErrNotRunning
// otherwise.
func (a *Agent) Stop() error {
	a.mu.Lock()
	if a.state != StateRunning {
		a.mu.Unlock()
		return ErrNotRunning
	}
	a.state = StateStopping
	t := a.transport
	a.mu.Unlock()

	if t != nil {
		t.close()
	}
	a.wg.Wait()

	a.pool.Stop()

	a.mu.Lock()
	a.state = StateStopped
	a.mu.Unlock()

	a.logger.Info("agent stopped")
	return nil
}

func (a *Agent) receiveLoop() {
	defer a.wg.Done()

	for {
		data, addr, err := a.transport.receive()
		if err != nil {
			a.mu.Lock()
			stopping := a.state != StateRunning
			a.mu.Unlock()
			if stopping {
				return
			}
			a.logger.Warn("error reading datagram", "error", err)
			continue
		}

		datagram := append([]byte(nil), data...)
		remote := addr
		if err := a.pool.Submit(func() { a.handle(datagram, remote) }); err != nil {
			return
		}
	}
}

// handle decodes one datagram and dispatches it to the appropriate
// command handler, dropping anything malformed or rejected by the
// community acceptor silently, per the protocol's error-handling
// design.
func (a *Agent) handle(data []byte, addr *net.UDPAddr) {
	start := time.Now()
	defer func() { a.metrics.RequestLatency.ObserveDuration(time.Since(start)) }()

	msg, err := DecodeMessage(data)
	if err != nil {
		a.metrics.DecodeErrors.Add(1)
		a.logger.Debug("dropping malformed datagram", "error", err, "source", addr)
		return
	}

	if !a.opts.CommunityAcceptor(msg.Community) {
		a.metrics.CommunityDrops.Add(1)
		a.logger.Debug("dropping request with rejected community", "source", addr)
		return
	}

	var resp *PDU
	switch msg.PDU.Command {
	case PDUGetRequest:
		a.metrics.GetRequests.Add(1)
		resp = a.handleGet(msg.PDU)
	case PDUGetNextRequest:
		a.metrics.GetNextRequests.Add(1)
		resp = a.handleGetNext(msg.PDU)
	case PDUSetRequest:
		a.metrics.SetRequests.Add(1)
		resp = a.handleSet(msg.PDU)
	case PDUTrap:
		a.metrics.TrapsReceived.Add(1)
		resp = a.handleTrap(msg.PDU)
	default:
		a.metrics.DecodeErrors.Add(1)
		return
	}

	reply := &Message{Version: msg.Version, Community: msg.Community, PDU: resp}
	if err := a.transport.send(reply.Encode(), addr); err != nil {
		a.logger.Warn("failed to send response", "error", err, "destination", addr)
		return
	}
	a.metrics.Responses.Add(1)
}

func (a *Agent) handleGet(req *PDU) *PDU {
	vbs := make([]VarBind, len(req.VarBinds))
	for i, vb := range req.VarBinds {
		if value, ok := a.store.Get(vb.OID); ok {
			vbs[i] = VarBind{OID: vb.OID, Value: value}
		} else {
			vbs[i] = VarBind{OID: vb.OID, Value: NoSuchObjectValue()}
		}
	}
	return NewResponse(req.RequestID, ErrStatusNoError, 0, vbs)
}

func (a *Agent) handleGetNext(req *PDU) *PDU {
	vbs := make([]VarBind, len(req.VarBinds))
	for i, vb := range req.VarBinds {
		if oid, value, ok := a.store.GetNext(vb.OID); ok {
			vbs[i] = VarBind{OID: oid, Value: value}
		} else {
			vbs[i] = VarBind{OID: vb.OID, Value: EndOfMibViewValue()}
		}
	}
	return NewResponse(req.RequestID, ErrStatusNoError, 0, vbs)
}

// handleSet answers a SetRequest with a no-op echo of its varbinds:
// the store is never mutated.
// TODO: back this with a writable MIB once the store interface grows
// an access-control concept to gate which OIDs may be set.
func (a *Agent) handleSet(req *PDU) *PDU {
	return NewResponse(req.RequestID, ErrStatusNoError, 0, req.VarBinds)
}

// handleTrap answers a Trap with the same no-op echo as handleSet:
// the reference core treats both as unimplemented writes and replies
// with a GetResponse rather than leaving the sender without a reply.
func (a *Agent) handleTrap(req *PDU) *PDU {
	return NewResponse(req.RequestID, ErrStatusNoError, 0, req.VarBinds)
}
