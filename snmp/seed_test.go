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

func TestParseSeedYAMLBareScalar(t *testing.T) {
	doc := []byte(`
1.3.6.1.2.1.1.1.0: "simulated device"
1.3.6.1.2.1.1.5.0: "agent-1"
`)
	seed, err := ParseSeedYAML(doc)
	require.NoError(t, err)
	require.Equal(t, OctetStringValue([]byte("simulated device")), seed["1.3.6.1.2.1.1.1.0"])
	require.Equal(t, OctetStringValue([]byte("agent-1")), seed["1.3.6.1.2.1.1.5.0"])
}

func TestParseSeedYAMLTypedEntries(t *testing.T) {
	doc := []byte(`
1.3.6.1.2.1.1.3.0:
  type: integer
  value: "42"
1.3.6.1.2.1.1.2.0:
  type: oid
  value: "1.3.6.1.4.1.9999"
`)
	seed, err := ParseSeedYAML(doc)
	require.NoError(t, err)
	require.Equal(t, IntegerValue(42), seed["1.3.6.1.2.1.1.3.0"])
	require.Equal(t, ObjectIDValue(MustParseOID("1.3.6.1.4.1.9999")), seed["1.3.6.1.2.1.1.2.0"])
}

func TestParseSeedYAMLRejectsInvalidOID(t *testing.T) {
	doc := []byte(`"not-an-oid": "value"`)
	_, err := ParseSeedYAML(doc)
	require.Error(t, err)
}

func TestParseSeedYAMLRejectsBadInteger(t *testing.T) {
	doc := []byte(`
1.3.6.1.2.1.1.3.0:
  type: integer
  value: "not-a-number"
`)
	_, err := ParseSeedYAML(doc)
	require.Error(t, err)
}

func TestParseSeedYAMLFeedsMemoryStore(t *testing.T) {
	doc := []byte(`1.3.6.1.2.1.1.1.0: "seeded"`)
	seed, err := ParseSeedYAML(doc)
	require.NoError(t, err)

	store := NewMemoryStoreFromSeed(seed)
	val, ok := store.Get(OIDSysDescr)
	require.True(t, ok)
	require.Equal(t, "seeded", string(val.Str))
}
