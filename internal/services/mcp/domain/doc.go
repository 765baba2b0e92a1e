// Package domain translates MCP tool and resource calls into PSGC client
// operations.
//
// Every level of the dataset gets a list tool, a lookup tool and one tool
// per child scope. Hierarchy, validation, search and cache maintenance are
// exposed as dedicated tools. Handlers stay thin: they validate input, call
// the client and shape the result for MCP clients.
package domain
