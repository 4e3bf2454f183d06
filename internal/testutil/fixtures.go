// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"go.yaml.in/yaml/v4"
)

// SampleDocumentYAML is an Ethereum-flavoured OpenRPC document that exercises
// every reference kind: component schemas (including a self cycle and a
// two-schema cycle), content descriptors, errors, examples, example pairings
// and tags, plus one top-level method reference.
const SampleDocumentYAML = `openrpc: 1.2.6
info:
  title: Ethereum JSON-RPC API
  version: 1.0.0
  description: Ethereum-inspired JSON-RPC API with hierarchical method structure
  license:
    name: Apache 2.0
    url: https://www.apache.org/licenses/LICENSE-2.0.html
servers:
  - name: Mainnet
    url: https://mainnet.example.com/rpc
    summary: Production network
methods:
  - name: eth/blockNumber
    summary: Returns the current block number
    description: Returns the number of most recent block
    tags:
      - $ref: '#/components/tags/eth'
    params: []
    result:
      name: blockNumber
      schema:
        $ref: '#/components/schemas/Quantity'
    errors:
      - $ref: '#/components/errors/InvalidParams'
    examples:
      - $ref: '#/components/examplePairingObjects/currentBlock'
  - name: eth/getBalance
    summary: Returns balance of given address
    tags:
      - name: eth
    params:
      - $ref: '#/components/contentDescriptors/Address'
      - name: block
        schema:
          oneOf:
            - $ref: '#/components/schemas/Quantity'
            - enum: [latest, earliest, pending]
    result:
      name: balance
      schema:
        $ref: '#/components/schemas/Quantity'
    errors:
      - $ref: '#/components/errors/InvalidParams'
      - code: -32001
        message: Address not found
  - name: eth/getBlockByNumber
    params:
      - name: blockNumber
        schema:
          $ref: '#/components/schemas/Quantity'
    result:
      $ref: '#/components/contentDescriptors/BlockResult'
  - name: net/version
    summary: Returns network ID
    params: []
    result:
      name: networkId
      schema:
        type: string
  - name: debug/traceTree
    summary: Returns a call trace
    params: []
    result:
      name: trace
      schema:
        $ref: '#/components/schemas/TraceNode'
  - name: rpc_modules
    params: []
  - $ref: '#/components/methods/shared'
components:
  schemas:
    Quantity:
      type: string
      pattern: ^0x[0-9a-fA-F]+$
    Block:
      type: object
      required: [number]
      properties:
        number:
          $ref: '#/components/schemas/Quantity'
        parent:
          $ref: '#/components/schemas/Block'
        transactions:
          type: array
          items:
            $ref: '#/components/schemas/Transaction'
    Transaction:
      type: object
      properties:
        hash:
          type: string
        block:
          $ref: '#/components/schemas/Block'
    TraceNode:
      type: object
      properties:
        calls:
          type: array
          items:
            $ref: '#/components/schemas/TraceNode'
  contentDescriptors:
    Address:
      name: address
      required: true
      schema:
        type: string
        pattern: ^0x[0-9a-fA-F]{40}$
    BlockResult:
      name: block
      schema:
        $ref: '#/components/schemas/Block'
  errors:
    InvalidParams:
      code: -32602
      message: Invalid params
    InternalError:
      code: -32603
      message: Internal error
  examples:
    latestBlock:
      name: latestBlock
      value: '0x5bad55'
  examplePairingObjects:
    currentBlock:
      name: currentBlock
      params: []
      result:
        $ref: '#/components/examples/latestBlock'
  tags:
    eth:
      name: eth
      description: Ethereum namespace
`

// SampleDocument decodes SampleDocumentYAML into a fresh raw document map.
func SampleDocument(t *testing.T) map[string]any {
	t.Helper()

	var doc map[string]any
	if err := yaml.Unmarshal([]byte(SampleDocumentYAML), &doc); err != nil {
		t.Fatalf("Failed to decode sample document: %v", err)
	}
	return doc
}

// MinimalDocument returns the smallest raw document that passes validation.
func MinimalDocument() map[string]any {
	return map[string]any{
		"openrpc": "1.2.6",
		"info": map[string]any{
			"title":   "Test API",
			"version": "1.0.0",
		},
		"methods": []any{},
	}
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}

// WriteTempGzip gzips data and writes it to a temporary ".json.gz" file.
func WriteTempGzip(t *testing.T, data []byte) string {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("Failed to gzip data: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to finish gzip stream: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.json.gz")
	if err := os.WriteFile(tmpFile, buf.Bytes(), 0600); err != nil {
		t.Fatalf("Failed to write temporary gzip file: %v", err)
	}

	return tmpFile
}
