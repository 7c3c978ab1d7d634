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
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetSet(t *testing.T) {
	s := NewMemoryStore()
	oid := OIDSysDescr
	_, ok := s.Get(oid)
	require.False(t, ok)

	s.Set(oid, OctetStringValue([]byte("device")))
	val, ok := s.Get(oid)
	require.True(t, ok)
	require.Equal(t, "device", string(val.Str))
}

func TestMemoryStoreGetNextWalkOrder(t *testing.T) {
	s := NewMemoryStore()
	oids := []OID{
		MustParseOID("1.3.6.1.2.1.1.1.0"),
		MustParseOID("1.3.6.1.2.1.1.2.0"),
		MustParseOID("1.3.6.1.2.1.1.5.0"),
	}
	for i, oid := range oids {
		s.Set(oid, IntegerValue(int64(i)))
	}

	next, val, ok := s.GetNext(nil)
	require.True(t, ok)
	require.True(t, next.Equal(oids[0]))
	require.Equal(t, int64(0), val.Int)

	next, _, ok = s.GetNext(oids[0])
	require.True(t, ok)
	require.True(t, next.Equal(oids[1]))

	next, _, ok = s.GetNext(oids[1])
	require.True(t, ok)
	require.True(t, next.Equal(oids[2]))

	_, _, ok = s.GetNext(oids[2])
	require.False(t, ok)
}

func TestMemoryStoreGetNextSkipsToSuccessorOfAbsentOID(t *testing.T) {
	s := NewMemoryStore()
	s.Set(MustParseOID("1.3.6.1.2.1.1.1.0"), IntegerValue(1))
	s.Set(MustParseOID("1.3.6.1.2.1.1.3.0"), IntegerValue(3))

	// .1.2.0 is absent; GetNext must return the next entry greater than it.
	next, val, ok := s.GetNext(MustParseOID("1.3.6.1.2.1.1.2.0"))
	require.True(t, ok)
	require.True(t, next.Equal(MustParseOID("1.3.6.1.2.1.1.3.0")))
	require.Equal(t, int64(3), val.Int)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	s.Set(OIDSysDescr, NullValue())
	s.Delete(OIDSysDescr)
	_, ok := s.Get(OIDSysDescr)
	require.False(t, ok)
}

func TestMemoryStoreFromSeed(t *testing.T) {
	seed := DefaultSeed("desc", "contact", "name", "loc")
	s := NewMemoryStoreFromSeed(seed)
	require.Equal(t, len(seed), s.Len())

	val, ok := s.Get(OIDSysDescr)
	require.True(t, ok)
	require.Equal(t, "desc", string(val.Str))
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			oid := OID{1, 3, 6, 1, uint32(n)}
			s.Set(oid, IntegerValue(int64(n)))
			s.Get(oid)
			s.GetNext(oid)
		}(i)
	}
	wg.Wait()
	require.Equal(t, 50, s.Len())
}
