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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeInteger(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		want  []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"positive small", 5, []byte{0x05}},
		{"positive needing pad", 128, []byte{0x00, 0x80}},
		{"positive two bytes", 256, []byte{0x01, 0x00}},
		{"negative one", -1, []byte{0xFF}},
		{"negative small", -5, []byte{0xFB}},
		{"negative needing extend", -129, []byte{0xFF, 0x7F}},
		{"negative 128", -128, []byte{0x80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, encodeInteger(tt.value))
		})
	}
}

func TestIntegerRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 127, 128, -128, -129, 255, 256, 65535, 65536, -70000, 2147483647, -2147483648}
	for _, v := range values {
		encoded := encodeInteger(v)
		require.Equal(t, v, decodeInteger(encoded), "round-trip of %d", v)
	}
}

func TestEncodeDecodeLength(t *testing.T) {
	tests := []int{0, 1, 127, 128, 200, 255, 256, 65535, 70000}
	for _, length := range tests {
		encoded := encodeLength(length)
		index := 0
		got, err := decodeLength(encoded, &index)
		require.NoError(t, err)
		require.Equal(t, length, got)
		require.Equal(t, len(encoded), index)
	}
}

func TestDecodeLengthLongForm(t *testing.T) {
	// 0x82 0x01 0x2C -> long form, 2 length bytes, value 0x012C = 300
	data := []byte{0x82, 0x01, 0x2C}
	index := 0
	got, err := decodeLength(data, &index)
	require.NoError(t, err)
	require.Equal(t, 300, got)
	require.Equal(t, 3, index)
}

func TestOIDRoundTrip(t *testing.T) {
	tests := []string{
		"1.3.6.1.2.1.1.1.0",
		"1.3.6.1.4.1.12345.128.16384.2097152",
		"0.0",
		"2.999.1",
	}
	for _, s := range tests {
		oid, err := ParseOID(s)
		require.NoError(t, err)

		encoded := encodeOID(oid)
		decoded, err := decodeOID(encoded)
		require.NoError(t, err)
		require.True(t, oid.Equal(decoded), "round-trip of %s: got %s", s, decoded)
	}
}

func TestEncodeSubIdentifierMultiByte(t *testing.T) {
	// 128 requires continuation: 0x81 0x00
	require.Equal(t, []byte{0x81, 0x00}, encodeSubIdentifier(128))
	// 16384 requires 3 bytes: 0x81 0x80 0x00
	require.Equal(t, []byte{0x81, 0x80, 0x00}, encodeSubIdentifier(16384))
}

func TestOIDCompareOrdering(t *testing.T) {
	a := MustParseOID("1.3.6.1.2.1.1.1.0")
	b := MustParseOID("1.3.6.1.2.1.1.1.1")
	c := MustParseOID("1.3.6.1.2.1.1.2.0")

	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, -1, b.Compare(c))
	require.Equal(t, 0, a.Compare(a.Copy()))
	require.True(t, b.HasPrefix(MustParseOID("1.3.6.1.2.1.1")))
}

func TestVarBindRoundTrip(t *testing.T) {
	vb := VarBind{OID: OIDSysDescr, Value: OctetStringValue([]byte("test device"))}
	encoded := encodeVarBind(vb)

	index := 0
	elem, err := decodeTLV(encoded, &index)
	require.NoError(t, err)
	require.Equal(t, TypeSequence, elem.Tag)

	decoded, err := decodeVarBind(elem.Payload)
	require.NoError(t, err)
	require.True(t, vb.OID.Equal(decoded.OID))
	require.Equal(t, vb.Value, decoded.Value)
}

func TestDecodeTLVTruncated(t *testing.T) {
	index := 0
	_, err := decodeTLV([]byte{0x02, 0x05, 0x01}, &index)
	require.ErrorIs(t, err, ErrLengthOverflow)
}

func TestDecodeExceptionValues(t *testing.T) {
	index := 0
	data := encodeTLV(TypeNoSuchObject, nil)
	tv, err := decodeTLV(data, &index)
	require.NoError(t, err)

	val, err := decodeValue(tv)
	require.NoError(t, err)
	require.Equal(t, KindNoSuchObject, val.Kind)
}
