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
	"bytes"
)

// encodeLength encodes a BER length using short form when it fits in
// one byte (0..127) and long form otherwise.
func encodeLength(length int) []byte {
	if length < 128 {
		return []byte{byte(length)}
	}

	var digits []byte
	temp := length
	for temp > 0 {
		digits = append([]byte{byte(temp & 0xff)}, digits...)
		temp >>= 8
	}
	return append([]byte{0x80 | byte(len(digits))}, digits...)
}

// decodeLength decodes a BER length, accepting both short form and the
// long form (first byte 0x81..0x84) standard tooling emits.
func decodeLength(data []byte, index *int) (int, error) {
	if *index >= len(data) {
		return 0, ErrTruncatedBuffer
	}
	b := data[*index]
	*index++

	if b < 0x80 {
		return int(b), nil
	}

	numBytes := int(b & 0x7f)
	if numBytes == 0 || numBytes > 4 {
		return 0, NewParseError("unsupported long-form length", *index-1)
	}
	if *index+numBytes > len(data) {
		return 0, ErrTruncatedBuffer
	}

	length := 0
	for i := 0; i < numBytes; i++ {
		length = (length << 8) | int(data[*index])
		*index++
	}
	return length, nil
}

// encodeInteger emits the minimal-length two's-complement big-endian
// encoding of value: the number of bytes whose most significant bit
// correctly represents the sign. Zero always encodes as a single 0x00.
func encodeInteger(value int64) []byte {
	if value == 0 {
		return []byte{0}
	}

	var buf []byte
	if value > 0 {
		temp := value
		for temp > 0 {
			buf = append([]byte{byte(temp & 0xff)}, buf...)
			temp >>= 8
		}
		if buf[0]&0x80 != 0 {
			buf = append([]byte{0}, buf...)
		}
	} else {
		temp := value
		for temp < -1 || (temp == -1 && len(buf) == 0) {
			buf = append([]byte{byte(temp & 0xff)}, buf...)
			temp >>= 8
		}
		if len(buf) > 0 && buf[0]&0x80 == 0 {
			buf = append([]byte{0xff}, buf...)
		}
	}
	return buf
}

// decodeInteger interprets data as a two's-complement big-endian integer.
func decodeInteger(data []byte) int64 {
	if len(data) == 0 {
		return 0
	}

	var value int64
	if data[0]&0x80 != 0 {
		value = -1
	}
	for _, b := range data {
		value = (value << 8) | int64(b)
	}
	return value
}

// encodeOID packs an OID per RFC 1157: the first two sub-identifiers
// combine into one byte as 40*oid[0]+oid[1]; each subsequent
// sub-identifier uses base-128 continuation encoding, most significant
// digit first, with the high bit set on every digit but the last.
func encodeOID(oid OID) []byte {
	if len(oid) < 2 {
		return nil
	}

	buf := []byte{byte(oid[0]*40 + oid[1])}
	for i := 2; i < len(oid); i++ {
		buf = append(buf, encodeSubIdentifier(oid[i])...)
	}
	return buf
}

func encodeSubIdentifier(value uint32) []byte {
	if value < 128 {
		return []byte{byte(value)}
	}

	var digits []byte
	temp := value
	for temp > 0 {
		digits = append([]byte{byte(temp & 0x7f)}, digits...)
		temp >>= 7
	}
	for i := 0; i < len(digits)-1; i++ {
		digits[i] |= 0x80
	}
	return digits
}

// decodeOID unpacks an OID from its BER payload.
func decodeOID(data []byte) (OID, error) {
	if len(data) == 0 {
		return nil, NewParseError("empty OID", -1)
	}

	oid := OID{uint32(data[0] / 40), uint32(data[0] % 40)}

	var current uint32
	for i := 1; i < len(data); i++ {
		current = (current << 7) | uint32(data[i]&0x7f)
		if data[i]&0x80 == 0 {
			oid = append(oid, current)
			current = 0
		}
	}
	return oid, nil
}

// encodeTLV emits [tag][length][payload].
func encodeTLV(tag BERType, payload []byte) []byte {
	length := encodeLength(len(payload))
	out := make([]byte, 0, 1+len(length)+len(payload))
	out = append(out, byte(tag))
	out = append(out, length...)
	out = append(out, payload...)
	return out
}

// tlv is a decoded Tag-Length-Value element: its tag and a slice of its
// payload bytes.
type tlv struct {
	Tag     BERType
	Payload []byte
}

// decodeTLV reads one TLV element from data starting at *index,
// advancing *index past its payload.
func decodeTLV(data []byte, index *int) (tlv, error) {
	if *index >= len(data) {
		return tlv{}, ErrTruncatedBuffer
	}
	tag := BERType(data[*index])
	*index++

	length, err := decodeLength(data, index)
	if err != nil {
		return tlv{}, err
	}
	if length < 0 || *index+length > len(data) {
		return tlv{}, ErrLengthOverflow
	}

	payload := data[*index : *index+length]
	*index += length
	return tlv{Tag: tag, Payload: payload}, nil
}

// encodeValue encodes a Value's TLV body (tag + length + payload, with
// no outer wrapping — callers wrap varbinds in their own SEQUENCE).
func encodeValue(v Value) []byte {
	switch v.Kind {
	case KindNull, KindNoSuchObject, KindNoSuchInstance, KindEndOfMibView:
		return encodeTLV(v.BERType(), nil)
	case KindInteger:
		return encodeTLV(TypeInteger, encodeInteger(v.Int))
	case KindOctetString:
		return encodeTLV(TypeOctetString, v.Str)
	case KindObjectID:
		return encodeTLV(TypeObjectIdentifier, encodeOID(v.OID))
	case KindSequence:
		var buf bytes.Buffer
		for _, vb := range v.Seq {
			buf.Write(encodeVarBind(vb))
		}
		return encodeTLV(TypeSequence, buf.Bytes())
	default:
		return encodeTLV(TypeNull, nil)
	}
}

// decodeValue decodes a single TLV element's payload into a Value
// according to its tag.
func decodeValue(t tlv) (Value, error) {
	switch t.Tag {
	case TypeNull:
		return NullValue(), nil
	case TypeInteger:
		return IntegerValue(decodeInteger(t.Payload)), nil
	case TypeOctetString:
		return OctetStringValue(append([]byte(nil), t.Payload...)), nil
	case TypeObjectIdentifier:
		oid, err := decodeOID(t.Payload)
		if err != nil {
			return Value{}, err
		}
		return ObjectIDValue(oid), nil
	case TypeNoSuchObject:
		return NoSuchObjectValue(), nil
	case TypeNoSuchInstance:
		return NoSuchInstanceValue(), nil
	case TypeEndOfMibView:
		return EndOfMibViewValue(), nil
	default:
		return Value{}, NewParseError("unsupported value tag", -1)
	}
}

// encodeVarBind encodes one (oid, value) pair wrapped in its SEQUENCE.
func encodeVarBind(vb VarBind) []byte {
	var buf bytes.Buffer
	buf.Write(encodeTLV(TypeObjectIdentifier, encodeOID(vb.OID)))
	buf.Write(encodeValue(vb.Value))
	return encodeTLV(TypeSequence, buf.Bytes())
}

// decodeVarBind decodes one SEQUENCE { name OBJECT IDENTIFIER, value ObjectSyntax }.
func decodeVarBind(data []byte) (VarBind, error) {
	index := 0

	oidTLV, err := decodeTLV(data, &index)
	if err != nil {
		return VarBind{}, err
	}
	if oidTLV.Tag != TypeObjectIdentifier {
		return VarBind{}, NewParseError("expected OBJECT IDENTIFIER", index)
	}
	oid, err := decodeOID(oidTLV.Payload)
	if err != nil {
		return VarBind{}, err
	}

	valTLV, err := decodeTLV(data, &index)
	if err != nil {
		return VarBind{}, err
	}
	val, err := decodeValue(valTLV)
	if err != nil {
		return VarBind{}, err
	}

	return VarBind{OID: oid, Value: val}, nil
}

// encodeVarBindList wraps a list of varbinds in the outer VarBindList SEQUENCE.
func encodeVarBindList(vbs []VarBind) []byte {
	var buf bytes.Buffer
	for _, vb := range vbs {
		buf.Write(encodeVarBind(vb))
	}
	return encodeTLV(TypeSequence, buf.Bytes())
}

// decodeVarBindList decodes the VarBindList SEQUENCE OF VarBind.
func decodeVarBindList(data []byte) ([]VarBind, error) {
	index := 0
	seq, err := decodeTLV(data, &index)
	if err != nil {
		return nil, err
	}
	if seq.Tag != TypeSequence {
		return nil, NewParseError("expected VarBindList SEQUENCE", index)
	}

	var out []VarBind
	body := seq.Payload
	pos := 0
	for pos < len(body) {
		elem, err := decodeTLV(body, &pos)
		if err != nil {
			return nil, err
		}
		if elem.Tag != TypeSequence {
			return nil, NewParseError("expected VarBind SEQUENCE", pos)
		}
		vb, err := decodeVarBind(elem.Payload)
		if err != nil {
			return nil, err
		}
		out = append(out, vb)
	}
	return out, nil
}
