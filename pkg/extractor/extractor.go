// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package extractor turns uploaded document bytes into plain text for
// chunking.
package extractor

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	// ErrPDFParse is returned when a PDF cannot be opened or read.
	ErrPDFParse = errors.New("pdf parse error")

	// ErrNoText is returned when a document yields no extractable text.
	ErrNoText = errors.New("no text extracted from document")
)

// PageSeparator joins the text of consecutive PDF pages.
const PageSeparator = "\n\n"

// Extract returns the plain text of content, choosing a format by the
// extension of filename. Unknown extensions are treated as plain text.
// A document that yields only whitespace fails with ErrNoText.
func Extract(content []byte, filename string) (string, error) {
	var (
		text string
		err  error
	)

	switch Format(filename) {
	case "pdf":
		text, err = extractPDF(content)
	case "html":
		text, err = extractHTML(content)
	case "csv":
		text, err = extractCSV(content)
	case "json":
		text, err = extractJSON(content)
	case "jsonl":
		text, err = extractJSONL(content)
	default:
		text, err = extractText(content)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

// Format names the extraction path used for filename.
func Format(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "pdf"
	case ".html", ".htm":
		return "html"
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	case ".jsonl":
		return "jsonl"
	default:
		return "text"
	}
}
