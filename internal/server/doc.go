// Package server implements the MCP (Model Context Protocol) server for
// automatic border cropping.
//
// This package provides a JSON-RPC 2.0 server that exposes the autocrop
// engine and its supporting image operations through the MCP protocol.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Color Operations:
//   - image_sample_color: Get color at pixel
//   - image_sample_colors_multi: Sample multiple points
//   - image_compare_colors: Apply the border color tolerance to two pixels
//
// Region Operations:
//   - image_crop: Extract rectangular region
//
// Auto-crop Operations:
//   - image_find_bounds: Detect the content rectangle
//   - image_autocrop: Return the cropped image as base64 PNG
//   - image_autocrop_save: Write the crop to disk
//   - image_autocrop_batch: Crop and save several files
//   - image_autocrop_preview: Outline the detected bounds
//
// # Image Caching
//
// Images are cached by path and reused across tool calls. Saving a crop
// evicts the written path so later calls see the new file.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (malformed tools/call
//     params) or -32601 (unknown method)
//   - message: Human-readable error description
//   - data: The Go error string
//
// Batch crops report per-file failures inside the result instead.
//
// # Usage
//
//	cfg, err := config.FromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg, log.Default())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
