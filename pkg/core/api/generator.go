// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package api

import "context"

// TextGenerator produces a completion for a single prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
