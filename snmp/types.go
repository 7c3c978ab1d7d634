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
	"strconv"
	"strings"
)

// BERType is an ASN.1/BER tag byte.
type BERType byte

const (
	TypeInteger          BERType = 0x02
	TypeOctetString      BERType = 0x04
	TypeNull             BERType = 0x05
	TypeObjectIdentifier BERType = 0x06
	TypeSequence         BERType = 0x30

	TypeGetRequest     BERType = 0xA0
	TypeGetNextRequest BERType = 0xA1
	TypeGetResponse    BERType = 0xA2
	TypeSetRequest     BERType = 0xA3
	TypeTrap           BERType = 0xA4

	TypeNoSuchObject   BERType = 0x80
	TypeNoSuchInstance BERType = 0x81
	TypeEndOfMibView   BERType = 0x82
)

// String returns the ASN.1 name of the tag.
func (t BERType) String() string {
	switch t {
	case TypeInteger:
		return "INTEGER"
	case TypeOctetString:
		return "OCTET STRING"
	case TypeNull:
		return "NULL"
	case TypeObjectIdentifier:
		return "OBJECT IDENTIFIER"
	case TypeSequence:
		return "SEQUENCE"
	case TypeGetRequest:
		return "GetRequest-PDU"
	case TypeGetNextRequest:
		return "GetNextRequest-PDU"
	case TypeGetResponse:
		return "GetResponse-PDU"
	case TypeSetRequest:
		return "SetRequest-PDU"
	case TypeTrap:
		return "Trap-PDU"
	case TypeNoSuchObject:
		return "noSuchObject"
	case TypeNoSuchInstance:
		return "noSuchInstance"
	case TypeEndOfMibView:
		return "endOfMibView"
	default:
		return fmt.Sprintf("Unknown(0x%02X)", byte(t))
	}
}

// PDUType identifies the command carried by a PDU.
type PDUType BERType

const (
	PDUGetRequest     PDUType = PDUType(TypeGetRequest)
	PDUGetNextRequest PDUType = PDUType(TypeGetNextRequest)
	PDUGetResponse    PDUType = PDUType(TypeGetResponse)
	PDUSetRequest     PDUType = PDUType(TypeSetRequest)
	PDUTrap           PDUType = PDUType(TypeTrap)
)

// String returns the string representation of the PDU type.
func (p PDUType) String() string {
	return BERType(p).String()
}

// OID is an ordered sequence of non-negative sub-identifiers.
type OID []uint32

// String returns the dotted-decimal representation.
func (o OID) String() string {
	if len(o) == 0 {
		return ""
	}
	parts := make([]string, len(o))
	for i, n := range o {
		parts[i] = strconv.FormatUint(uint64(n), 10)
	}
	return strings.Join(parts, ".")
}

// ParseOID parses a dotted-decimal OID string such as "1.3.6.1.2.1.1.1.0".
func ParseOID(s string) (OID, error) {
	if s == "" {
		return nil, ErrInvalidOID
	}
	s = strings.TrimPrefix(s, ".")

	parts := strings.Split(s, ".")
	oid := make(OID, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid component %q", ErrInvalidOID, p)
		}
		oid[i] = uint32(n)
	}
	return oid, nil
}

// MustParseOID parses an OID string and panics on error. Intended for
// package-level OID literals only.
func MustParseOID(s string) OID {
	oid, err := ParseOID(s)
	if err != nil {
		panic(err)
	}
	return oid
}

// Equal reports whether two OIDs have identical sub-identifiers.
func (o OID) Equal(other OID) bool {
	return o.Compare(other) == 0
}

// Compare returns -1, 0, or 1 as o is lexicographically less than,
// equal to, or greater than other. The empty OID precedes all others;
// a prefix precedes any of its extensions.
func (o OID) Compare(other OID) int {
	n := len(o)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if o[i] != other[i] {
			if o[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(o) < len(other):
		return -1
	case len(o) > len(other):
		return 1
	default:
		return 0
	}
}

// HasPrefix reports whether o starts with the given prefix.
func (o OID) HasPrefix(prefix OID) bool {
	if len(prefix) > len(o) {
		return false
	}
	for i, n := range prefix {
		if n != o[i] {
			return false
		}
	}
	return true
}

// Copy returns an independent copy of the OID.
func (o OID) Copy() OID {
	c := make(OID, len(o))
	copy(c, o)
	return c
}

// ValueKind discriminates the closed Value sum type.
type ValueKind byte

const (
	KindNull ValueKind = iota
	KindInteger
	KindOctetString
	KindObjectID
	KindSequence
	KindNoSuchObject
	KindNoSuchInstance
	KindEndOfMibView
)

// Value is the SNMPv1 value universe: a closed tagged union covering
// NULL, INTEGER, OCTET STRING, OBJECT IDENTIFIER, SEQUENCE OF VarBind,
// and the three zero-length exception tags.
type Value struct {
	Kind ValueKind
	Int  int64
	Str  []byte
	OID  OID
	Seq  []VarBind
}

// NullValue returns the NULL value used as a request placeholder.
func NullValue() Value { return Value{Kind: KindNull} }

// IntegerValue wraps a signed integer.
func IntegerValue(v int64) Value { return Value{Kind: KindInteger, Int: v} }

// OctetStringValue wraps a byte string.
func OctetStringValue(b []byte) Value { return Value{Kind: KindOctetString, Str: b} }

// ObjectIDValue wraps an OID value.
func ObjectIDValue(oid OID) Value { return Value{Kind: KindObjectID, OID: oid} }

// SequenceValue wraps a nested varbind list.
func SequenceValue(vbs []VarBind) Value { return Value{Kind: KindSequence, Seq: vbs} }

// NoSuchObjectValue is the exception sentinel for a Get on an absent OID.
func NoSuchObjectValue() Value { return Value{Kind: KindNoSuchObject} }

// NoSuchInstanceValue is the exception sentinel for an absent instance.
func NoSuchInstanceValue() Value { return Value{Kind: KindNoSuchInstance} }

// EndOfMibViewValue is the exception sentinel for GetNext past the last OID.
func EndOfMibViewValue() Value { return Value{Kind: KindEndOfMibView} }

// BERType returns the wire tag for the value's kind.
func (v Value) BERType() BERType {
	switch v.Kind {
	case KindNull:
		return TypeNull
	case KindInteger:
		return TypeInteger
	case KindOctetString:
		return TypeOctetString
	case KindObjectID:
		return TypeObjectIdentifier
	case KindSequence:
		return TypeSequence
	case KindNoSuchObject:
		return TypeNoSuchObject
	case KindNoSuchInstance:
		return TypeNoSuchInstance
	case KindEndOfMibView:
		return TypeEndOfMibView
	default:
		return TypeNull
	}
}

// String renders the value for logging/debugging.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "NULL"
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindOctetString:
		return string(v.Str)
	case KindObjectID:
		return v.OID.String()
	case KindSequence:
		return fmt.Sprintf("SEQUENCE(%d)", len(v.Seq))
	case KindNoSuchObject:
		return "noSuchObject"
	case KindNoSuchInstance:
		return "noSuchInstance"
	case KindEndOfMibView:
		return "endOfMibView"
	default:
		return "?"
	}
}

// VarBind is an (OID, value) pair carried in a PDU.
type VarBind struct {
	OID   OID
	Value Value
}

// String returns a human-readable rendering of the varbind.
func (vb VarBind) String() string {
	return fmt.Sprintf("%s = %s", vb.OID, vb.Value)
}

// Well-known OIDs used by the default MIB seed and by tests.
var (
	OIDSysDescr    = MustParseOID("1.3.6.1.2.1.1.1.0")
	OIDSysObjectID = MustParseOID("1.3.6.1.2.1.1.2.0")
	OIDSysUpTime   = MustParseOID("1.3.6.1.2.1.1.3.0")
	OIDSysContact  = MustParseOID("1.3.6.1.2.1.1.4.0")
	OIDSysName     = MustParseOID("1.3.6.1.2.1.1.5.0")
	OIDSysLocation = MustParseOID("1.3.6.1.2.1.1.6.0")
)

// Default agent configuration values.
const (
	DefaultPort          = 161
	DefaultCommunity     = "public"
	DefaultWorkerCount   = 4
	DefaultTaskQueueSize = 256
	MaxDatagramSize      = 1500
)
