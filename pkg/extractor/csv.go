// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package extractor

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// extractCSV treats the first record as a header and renders every other
// record as one "column: value; column: value" line, so each line carries
// the words a question is likely to use. Unparseable input is returned raw.
func extractCSV(content []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	if err != nil {
		return string(content), nil
	}

	var lines []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return string(content), nil
		}
		lines = append(lines, labelRecord(header, record))
	}
	if len(lines) == 0 {
		return strings.Join(header, ", "), nil
	}
	return strings.Join(lines, "\n"), nil
}

func labelRecord(header, record []string) string {
	fields := make([]string, 0, len(record))
	for i, v := range record {
		if v = strings.TrimSpace(v); v == "" {
			continue
		}
		if i < len(header) && strings.TrimSpace(header[i]) != "" {
			fields = append(fields, strings.TrimSpace(header[i])+": "+v)
		} else {
			fields = append(fields, v)
		}
	}
	return strings.Join(fields, "; ")
}
