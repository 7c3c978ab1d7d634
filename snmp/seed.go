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

	"gopkg.in/yaml.v3"
)

// seedEntry is the on-disk shape of one MIB seed entry. A bare scalar
// (handled by UnmarshalYAML) is shorthand for an OCTET STRING; the
// expanded form lets a seed file also carry INTEGER and OBJECT
// IDENTIFIER values.
type seedEntry struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
}

// UnmarshalYAML accepts either a bare string scalar or a {type, value}
// mapping, so a seed file can mix simple and explicitly-typed entries.
func (e *seedEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		e.Type = "string"
		return node.Decode(&e.Value)
	}

	type plain seedEntry
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*e = seedEntry(p)
	if e.Type == "" {
		e.Type = "string"
	}
	return nil
}

// ParseSeedYAML parses a YAML document mapping dotted-decimal OIDs to
// their seed values into a Value map suitable for NewMemoryStoreFromSeed.
func ParseSeedYAML(data []byte) (map[string]Value, error) {
	var raw map[string]seedEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("snmp: parsing MIB seed: %w", err)
	}

	seed := make(map[string]Value, len(raw))
	for oidStr, entry := range raw {
		if _, err := ParseOID(oidStr); err != nil {
			return nil, fmt.Errorf("snmp: seed entry %q: %w", oidStr, err)
		}

		switch entry.Type {
		case "string", "":
			seed[oidStr] = OctetStringValue([]byte(entry.Value))
		case "integer", "int":
			n, err := strconv.ParseInt(entry.Value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("snmp: seed entry %q: invalid integer %q", oidStr, entry.Value)
			}
			seed[oidStr] = IntegerValue(n)
		case "oid":
			valueOID, err := ParseOID(entry.Value)
			if err != nil {
				return nil, fmt.Errorf("snmp: seed entry %q: invalid OID value %q", oidStr, entry.Value)
			}
			seed[oidStr] = ObjectIDValue(valueOID)
		default:
			return nil, fmt.Errorf("snmp: seed entry %q: unknown type %q", oidStr, entry.Type)
		}
	}
	return seed, nil
}
