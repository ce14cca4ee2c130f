// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package mcp exposes the document question-answering engine as Model
// Context Protocol tools over stdio, so an MCP client can load a document,
// search it and ask questions about it.
//
// Tools:
//
//	load_document  - load a file path, file:// or s3:// URI
//	ask_document   - answer a question from the loaded document
//	search_chunks  - rank document chunks against a query
//	get_status     - session status, strategy and chunk count
//
// The server runs as the local user's subprocess, so load_document reads any
// path that user can read unless source.base_dir is configured.
package mcp
