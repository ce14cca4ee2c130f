// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package extractor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// extractJSON flattens a JSON document into "path: value" lines, e.g.
// "owner.name: Alice" or "tags[1]: urgent". Invalid JSON is returned as-is.
func extractJSON(content []byte) (string, error) {
	lines, ok := flattenJSON(content)
	if !ok {
		return string(content), nil
	}
	return strings.Join(lines, "\n"), nil
}

// extractJSONL flattens each line on its own; records become paragraphs.
func extractJSONL(content []byte) (string, error) {
	var records []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if lines, ok := flattenJSON([]byte(line)); ok {
			records = append(records, strings.Join(lines, "\n"))
		} else {
			records = append(records, line)
		}
	}
	return strings.Join(records, "\n\n"), nil
}

func flattenJSON(data []byte) ([]string, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	var lines []string
	flatten("", v, &lines)
	return lines, true
}

func flatten(path string, v interface{}, lines *[]string) {
	switch val := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			p := k
			if path != "" {
				p = path + "." + k
			}
			flatten(p, val[k], lines)
		}
	case []interface{}:
		for i, item := range val {
			flatten(fmt.Sprintf("%s[%d]", path, i), item, lines)
		}
	default:
		s := "null"
		if val != nil {
			s = fmt.Sprint(val)
		}
		if path == "" {
			*lines = append(*lines, s)
		} else {
			*lines = append(*lines, path+": "+s)
		}
	}
}
