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
	"errors"
	"fmt"
)

// Standard errors.
var (
	ErrInvalidOID         = errors.New("snmp: invalid OID")
	ErrBindFailed         = errors.New("snmp: bind failed")
	ErrTruncatedBuffer    = errors.New("snmp: truncated buffer")
	ErrMalformedTag       = errors.New("snmp: malformed or unexpected tag")
	ErrLengthOverflow     = errors.New("snmp: declared length exceeds remaining bytes")
	ErrUnsupportedVersion = errors.New("snmp: unsupported SNMP version")
	ErrPoolStopped        = errors.New("snmp: worker pool is stopping")
	ErrListenerClosed     = errors.New("snmp: listener closed")
	ErrAlreadyRunning     = errors.New("snmp: listener already running")
	ErrNotRunning         = errors.New("snmp: listener not running")
)

// ParseError represents a BER/PDU decoding failure.
type ParseError struct {
	Message string
	Offset  int
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("snmp: parse error at offset %d: %s", e.Offset, e.Message)
	}
	return fmt.Sprintf("snmp: parse error: %s", e.Message)
}

// NewParseError creates a new parse error.
func NewParseError(message string, offset int) *ParseError {
	return &ParseError{Message: message, Offset: offset}
}

// IsMalformed reports whether err represents a decode-time packet
// rejection (truncated buffer, bad tag, or a *ParseError) — any of
// which means the datagram must be dropped silently, per the protocol.
func IsMalformed(err error) bool {
	if err == nil {
		return false
	}
	var pe *ParseError
	return errors.As(err, &pe) ||
		errors.Is(err, ErrTruncatedBuffer) ||
		errors.Is(err, ErrMalformedTag) ||
		errors.Is(err, ErrLengthOverflow) ||
		errors.Is(err, ErrUnsupportedVersion)
}
