// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"strings"

	"github.com/leseb/pdfrag/pkg/chunking"
)

// ContextSeparator sits between retrieved chunks in the prompt context.
const ContextSeparator = "\n---\n"

// FallbackAnswer is the sentence the model is told to use when the context
// does not contain the answer.
const FallbackAnswer = "I couldn't find an answer in the provided document."

const promptTemplate = `Based strictly on the following context, please provide a concise and accurate answer to the question. If the answer cannot be found in the context, state "` + FallbackAnswer + `" Do not use any outside knowledge.

Context:
---
{context}
---

Question: {query}

Answer:`

// BuildContext joins chunk texts in order.
func BuildContext(chunks []chunking.Chunk) string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	return strings.Join(texts, ContextSeparator)
}

// BuildPrompt renders the grounded answering prompt.
func BuildPrompt(query, context string) string {
	r := strings.NewReplacer("{context}", context, "{query}", query)
	return r.Replace(promptTemplate)
}
