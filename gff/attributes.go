// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gff

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Attributes is an ordered set of attribute name/value pairs.  Values are
// always strings; no type coercion is performed.
type Attributes struct {
	names  []string
	values map[string]string
}

// Get returns the value stored under name and whether it is present.
func (a *Attributes) Get(name string) (string, bool) {
	value, ok := a.values[name]
	return value, ok
}

// Set stores value under name.  A name keeps its original position when set
// again.
func (a *Attributes) Set(name, value string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = value
}

// Len returns the number of stored attributes.
func (a *Attributes) Len() int {
	return len(a.names)
}

// Names returns the attribute names in insertion order.
func (a *Attributes) Names() []string {
	return a.names
}

// MarshalJSON renders the attributes as a JSON object preserving insertion
// order.
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range a.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(a.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ParseAttributes parses a GFF, GFF3 or GTF attribute column into name/value
// pairs.  GFF3 attributes have the form
//
//	name1=value1;name2=value2
//
// and GTF attributes the form
//
//	name1 "value1"; name2 "value2"
//
// Segments that fit neither form are discarded.  A plain GFF attribute column
// is a single free-text group name; when no structured pair can be extracted
// at all, the entire original column is returned under the key "group".
func ParseAttributes(column string) Attributes {
	var attributes Attributes
	for _, segment := range strings.Split(column, ";") {
		segment = strings.TrimSpace(segment)

		// Try '=' (GFF3) first because GFF3 values may contain spaces,
		// then the opening double quote (GTF).
		pair := strings.SplitN(segment, "=", 2)
		if len(pair) == 1 {
			pair = strings.SplitN(segment, "\"", 2)
		}
		if len(pair) == 1 {
			continue
		}
		name := strings.TrimSpace(pair[0])
		if name == "" {
			continue
		}
		attributes.Set(name, strings.Trim(pair[1], " \""))
	}

	if attributes.Len() == 0 {
		attributes.Set("group", column)
	}
	return attributes
}
