// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package extractor

import "strings"

// extractText passes content through, normalising Windows line endings so
// the paragraph and line separators match.
func extractText(content []byte) (string, error) {
	return strings.ReplaceAll(string(content), "\r\n", "\n"), nil
}
