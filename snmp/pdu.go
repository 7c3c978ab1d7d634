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

import "bytes"

// PDU is the command-specific inner message of an SNMPv1 exchange.
type PDU struct {
	Command     PDUType
	RequestID   int32
	ErrorStatus int
	ErrorIndex  int
	VarBinds    []VarBind
}

// Encode encodes the PDU body (request-id, error-status, error-index,
// varbind list) wrapped in its command tag.
func (p *PDU) Encode() []byte {
	var buf bytes.Buffer
	buf.Write(encodeTLV(TypeInteger, encodeInteger(int64(p.RequestID))))
	buf.Write(encodeTLV(TypeInteger, encodeInteger(int64(p.ErrorStatus))))
	buf.Write(encodeTLV(TypeInteger, encodeInteger(int64(p.ErrorIndex))))
	buf.Write(encodeVarBindList(p.VarBinds))
	return encodeTLV(BERType(p.Command), buf.Bytes())
}

// decodePDU decodes a command PDU from the already-unwrapped command TLV.
func decodePDU(t tlv) (*PDU, error) {
	switch t.Tag {
	case TypeGetRequest, TypeGetNextRequest, TypeGetResponse, TypeSetRequest, TypeTrap:
	default:
		return nil, NewParseError("unexpected PDU command tag", -1)
	}

	pdu := &PDU{Command: PDUType(t.Tag)}
	body := t.Payload
	index := 0

	reqID, err := decodeTLV(body, &index)
	if err != nil {
		return nil, err
	}
	if reqID.Tag != TypeInteger {
		return nil, NewParseError("expected request-id INTEGER", index)
	}
	pdu.RequestID = int32(decodeInteger(reqID.Payload))

	errStatus, err := decodeTLV(body, &index)
	if err != nil {
		return nil, err
	}
	if errStatus.Tag != TypeInteger {
		return nil, NewParseError("expected error-status INTEGER", index)
	}
	pdu.ErrorStatus = int(decodeInteger(errStatus.Payload))

	errIndex, err := decodeTLV(body, &index)
	if err != nil {
		return nil, err
	}
	if errIndex.Tag != TypeInteger {
		return nil, NewParseError("expected error-index INTEGER", index)
	}
	pdu.ErrorIndex = int(decodeInteger(errIndex.Payload))

	if index > len(body) {
		return nil, ErrTruncatedBuffer
	}
	pdu.VarBinds, err = decodeVarBindList(body[index:])
	if err != nil {
		return nil, err
	}

	return pdu, nil
}

// Message is a complete SNMPv1 message: version, community, and PDU.
type Message struct {
	Version   int
	Community []byte
	PDU       *PDU
}

// Encode encodes the full message, including the outer SEQUENCE.
func (m *Message) Encode() []byte {
	var buf bytes.Buffer
	buf.Write(encodeTLV(TypeInteger, encodeInteger(int64(m.Version))))
	buf.Write(encodeTLV(TypeOctetString, m.Community))
	buf.Write(m.PDU.Encode())
	return encodeTLV(TypeSequence, buf.Bytes())
}

// DecodeMessage decodes a complete SNMPv1 message from raw bytes,
// exhaustively consuming the outer SEQUENCE { version, community, pdu }.
// Only version 0 (SNMPv1) is accepted; anything else is rejected with
// ErrUnsupportedVersion so the caller drops the datagram silently.
func DecodeMessage(data []byte) (*Message, error) {
	index := 0
	outer, err := decodeTLV(data, &index)
	if err != nil {
		return nil, err
	}
	if outer.Tag != TypeSequence {
		return nil, NewParseError("expected outer SEQUENCE", index)
	}

	body := outer.Payload
	pos := 0

	versionTLV, err := decodeTLV(body, &pos)
	if err != nil {
		return nil, err
	}
	if versionTLV.Tag != TypeInteger {
		return nil, NewParseError("expected version INTEGER", pos)
	}
	version := int(decodeInteger(versionTLV.Payload))
	if version != 0 {
		return nil, ErrUnsupportedVersion
	}

	communityTLV, err := decodeTLV(body, &pos)
	if err != nil {
		return nil, err
	}
	if communityTLV.Tag != TypeOctetString {
		return nil, NewParseError("expected community OCTET STRING", pos)
	}

	cmdTLV, err := decodeTLV(body, &pos)
	if err != nil {
		return nil, err
	}
	if pos != len(body) {
		return nil, NewParseError("trailing bytes after PDU", pos)
	}
	pdu, err := decodePDU(cmdTLV)
	if err != nil {
		return nil, err
	}

	return &Message{
		Version:   version,
		Community: append([]byte(nil), communityTLV.Payload...),
		PDU:       pdu,
	}, nil
}

// NewGetRequest builds a GetRequest PDU for the given OIDs, each bound
// to a placeholder NULL value as required on the wire.
func NewGetRequest(requestID int32, oids ...OID) *PDU {
	return &PDU{Command: PDUGetRequest, RequestID: requestID, VarBinds: nullVarBinds(oids)}
}

// NewGetNextRequest builds a GetNextRequest PDU for the given OIDs.
func NewGetNextRequest(requestID int32, oids ...OID) *PDU {
	return &PDU{Command: PDUGetNextRequest, RequestID: requestID, VarBinds: nullVarBinds(oids)}
}

// NewResponse builds a GetResponse PDU echoing requestID with the given varbinds.
func NewResponse(requestID int32, errStatus, errIndex int, vbs []VarBind) *PDU {
	return &PDU{
		Command:     PDUGetResponse,
		RequestID:   requestID,
		ErrorStatus: errStatus,
		ErrorIndex:  errIndex,
		VarBinds:    vbs,
	}
}

func nullVarBinds(oids []OID) []VarBind {
	vbs := make([]VarBind, len(oids))
	for i, oid := range oids {
		vbs[i] = VarBind{OID: oid, Value: NullValue()}
	}
	return vbs
}
