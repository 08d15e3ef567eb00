// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

// Package mcp exposes the assistant tool catalog over the Model Context
// Protocol, so external MCP clients can call the same tools the completion
// provider sees.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/atelier-ai/atelier/pkg/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the mcp-go server around a tool registry.
type Server struct {
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server.
func NewServer(name, version string) *Server {
	return &Server{
		mcpServer: server.NewMCPServer(name, version),
	}
}

// ExposeRegistry registers every tool in the registry with the MCP server.
// Calls run under the given owner identity; error-shaped tool results map to
// MCP error results.
func (s *Server) ExposeRegistry(registry *tools.Registry, ownerID string) {
	for _, name := range registry.Names() {
		descriptor, ok := registry.Resolve(name)
		if !ok {
			continue
		}
		s.registerDescriptor(descriptor, ownerID)
	}
}

func (s *Server) registerDescriptor(d tools.Descriptor, ownerID string) {
	schema, err := json.Marshal(d.Parameters)
	if err != nil {
		schema = []byte(`{"type":"object"}`)
	}
	tool := mcp.NewToolWithRawSchema(d.Name, d.Description, schema)

	s.mcpServer.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		ctx = tools.WithOwner(ctx, ownerID)
		payload := d.Execute(ctx, tools.Arguments(args))

		if m, ok := payload.(map[string]any); ok {
			if msg, failed := m["error"]; failed {
				return mcp.NewToolResultError(fmt.Sprint(msg)), nil
			}
		}

		out, err := json.Marshal(payload)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("unencodable tool result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	})
}

// ServeStdio starts the server on Stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
