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

import "log/slog"

// PoolOptions configures a worker Pool.
type PoolOptions struct {
	// Workers is the number of goroutines processing tasks.
	Workers int
	// QueueSize bounds the number of pending tasks before Submit starts
	// dropping datagrams.
	QueueSize int
	// Logger receives pool diagnostics.
	Logger *slog.Logger
}

// NewPoolOptions creates PoolOptions with the agent's default sizing.
func NewPoolOptions() *PoolOptions {
	return &PoolOptions{
		Workers:   DefaultWorkerCount,
		QueueSize: DefaultTaskQueueSize,
	}
}

// PoolOption is a functional option for configuring a Pool.
type PoolOption func(*PoolOptions)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(o *PoolOptions) {
		o.Workers = n
	}
}

// WithQueueSize sets the bounded task queue capacity.
func WithQueueSize(n int) PoolOption {
	return func(o *PoolOptions) {
		o.QueueSize = n
	}
}

// WithPoolLogger sets the logger used for pool diagnostics.
func WithPoolLogger(logger *slog.Logger) PoolOption {
	return func(o *PoolOptions) {
		o.Logger = logger
	}
}

// CommunityAcceptor decides whether a request carrying the given
// community string should be answered. SNMPv1 has no authentication,
// so this is the agent's only community-string policy knob.
type CommunityAcceptor func(community []byte) bool

// AcceptAnyCommunity is the default CommunityAcceptor: it accepts
// every community string, mirroring the reference core, which only
// stores the community it receives and never filters on it.
func AcceptAnyCommunity(community []byte) bool { return true }

// ExactCommunity returns a CommunityAcceptor requiring an exact match
// against want, for deployments that want to gate on it anyway.
func ExactCommunity(want string) CommunityAcceptor {
	return func(community []byte) bool { return string(community) == want }
}

// AgentOptions configures an Agent.
type AgentOptions struct {
	// Address is the UDP listen address (host:port).
	Address string
	// Community is a label describing the agent's community string,
	// used for logging only. It does not, by itself, gate requests;
	// see CommunityAcceptor.
	Community string
	// CommunityAcceptor decides whether to answer a request given its
	// community string. Defaults to AcceptAnyCommunity if nil.
	CommunityAcceptor CommunityAcceptor
	// Store is the backing MIB. Defaults to an empty MemoryStore seeded
	// with the system group if nil.
	Store Store
	// PoolOptions configures the worker pool processing requests.
	PoolOptions []PoolOption
	// Logger receives agent lifecycle and request diagnostics.
	Logger *slog.Logger
	// Metrics receives request counters; defaults to a fresh AgentMetrics.
	Metrics *AgentMetrics
}

// NewAgentOptions creates AgentOptions with default values.
func NewAgentOptions() *AgentOptions {
	return &AgentOptions{
		Address:   ":161",
		Community: DefaultCommunity,
	}
}

// AgentOption is a functional option for configuring an Agent.
type AgentOption func(*AgentOptions)

// WithAddress sets the UDP listen address.
func WithAddress(addr string) AgentOption {
	return func(o *AgentOptions) {
		o.Address = addr
	}
}

// WithCommunity sets the agent's community label, used for logging.
// It does not gate incoming requests; pair it with
// WithCommunityAcceptor to enforce a particular community string.
func WithCommunity(community string) AgentOption {
	return func(o *AgentOptions) {
		o.Community = community
	}
}

// WithCommunityAcceptor sets the predicate deciding whether to answer
// a request given its community string. Unset, the agent accepts any
// community, per spec's default acceptance policy.
func WithCommunityAcceptor(acceptor CommunityAcceptor) AgentOption {
	return func(o *AgentOptions) {
		o.CommunityAcceptor = acceptor
	}
}

// WithStore sets the backing MIB store.
func WithStore(store Store) AgentOption {
	return func(o *AgentOptions) {
		o.Store = store
	}
}

// WithPoolOptions sets the options passed through to the worker pool.
func WithPoolOptions(opts ...PoolOption) AgentOption {
	return func(o *AgentOptions) {
		o.PoolOptions = opts
	}
}

// WithAgentLogger sets the logger used by the agent and its worker pool.
func WithAgentLogger(logger *slog.Logger) AgentOption {
	return func(o *AgentOptions) {
		o.Logger = logger
	}
}

// WithAgentMetrics sets the metrics sink the agent records against.
func WithAgentMetrics(m *AgentMetrics) AgentOption {
	return func(o *AgentOptions) {
		o.Metrics = m
	}
}
