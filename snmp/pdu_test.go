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

func TestMessageRoundTrip(t *testing.T) {
	req := NewGetRequest(42, OIDSysDescr, OIDSysName)
	msg := &Message{Version: 0, Community: []byte("public"), PDU: req}

	encoded := msg.Encode()
	decoded, err := DecodeMessage(encoded)
	require.NoError(t, err)

	require.Equal(t, 0, decoded.Version)
	require.Equal(t, []byte("public"), decoded.Community)
	require.Equal(t, PDUGetRequest, decoded.PDU.Command)
	require.Equal(t, int32(42), decoded.PDU.RequestID)
	require.Len(t, decoded.PDU.VarBinds, 2)
	require.True(t, decoded.PDU.VarBinds[0].OID.Equal(OIDSysDescr))
	require.Equal(t, KindNull, decoded.PDU.VarBinds[0].Value.Kind)
}

func TestDecodeMessageRejectsUnsupportedVersion(t *testing.T) {
	req := NewGetRequest(1, OIDSysDescr)
	msg := &Message{Version: 1, Community: []byte("public"), PDU: req}

	_, err := DecodeMessage(msg.Encode())
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDecodeMessageRejectsTruncated(t *testing.T) {
	req := NewGetRequest(1, OIDSysDescr)
	msg := &Message{Version: 0, Community: []byte("public"), PDU: req}
	full := msg.Encode()

	_, err := DecodeMessage(full[:len(full)-3])
	require.Error(t, err)
	require.True(t, IsMalformed(err))
}

func TestResponseRoundTripWithValues(t *testing.T) {
	vbs := []VarBind{
		{OID: OIDSysDescr, Value: OctetStringValue([]byte("device"))},
		{OID: MustParseOID("1.3.6.1.2.1.1.99.0"), Value: NoSuchObjectValue()},
	}
	resp := NewResponse(7, ErrStatusNoError, 0, vbs)
	msg := &Message{Version: 0, Community: []byte("public"), PDU: resp}

	decoded, err := DecodeMessage(msg.Encode())
	require.NoError(t, err)
	require.Equal(t, PDUGetResponse, decoded.PDU.Command)
	require.Equal(t, int32(7), decoded.PDU.RequestID)
	require.Equal(t, "device", string(decoded.PDU.VarBinds[0].Value.Str))
	require.Equal(t, KindNoSuchObject, decoded.PDU.VarBinds[1].Value.Kind)
}

func TestTrapPDURoundTrip(t *testing.T) {
	pdu := &PDU{Command: PDUTrap, RequestID: 0, VarBinds: []VarBind{
		{OID: OIDSysUpTime, Value: IntegerValue(12345)},
	}}
	msg := &Message{Version: 0, Community: []byte("public"), PDU: pdu}

	decoded, err := DecodeMessage(msg.Encode())
	require.NoError(t, err)
	require.Equal(t, PDUTrap, decoded.PDU.Command)
}
