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
	"fmt"
	"net"
)

// transport binds a single UDP socket for receiving requests and
// sending responses back to their originating address.
type transport struct {
	conn *net.UDPConn
}

// bindTransport resolves addr and opens a UDP listening socket.
func bindTransport(addr string) (*transport, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBindFailed, err)
	}

	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBindFailed, err)
	}

	return &transport{conn: conn}, nil
}

// receive blocks for the next datagram, returning its payload and
// source address. A datagram larger than MaxDatagramSize is truncated
// to that size, and the decoder then rejects it as malformed.
func (t *transport) receive() ([]byte, *net.UDPAddr, error) {
	buf := make([]byte, MaxDatagramSize)
	n, addr, err := t.conn.ReadFromUDP(buf)
	if err != nil {
		return nil, nil, err
	}
	return buf[:n], addr, nil
}

// send writes payload to addr.
func (t *transport) send(payload []byte, addr *net.UDPAddr) error {
	_, err := t.conn.WriteToUDP(payload, addr)
	return err
}

// localAddr returns the bound local address.
func (t *transport) localAddr() net.Addr {
	return t.conn.LocalAddr()
}

// close unblocks any in-flight receive and releases the socket.
func (t *transport) close() error {
	return t.conn.Close()
}
