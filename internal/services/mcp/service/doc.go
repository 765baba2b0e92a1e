// Package service wires the MCP protocol to the PSGC domain handlers.
//
// It builds the MCP server, registers every tool and resource, and runs it
// over stdio or streamable HTTP.
package service
