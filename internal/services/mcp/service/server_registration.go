package service

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/psgc-mcp/internal/hierarchy"
	"github.com/louisbranch/psgc-mcp/internal/psgc"
	"github.com/louisbranch/psgc-mcp/internal/services/mcp/domain"
)

type mcpRegistrationKind int

const (
	mcpRegistrationKindTools mcpRegistrationKind = iota
	mcpRegistrationKindResources
)

type mcpRegistrationModule struct {
	name     string
	kind     mcpRegistrationKind
	register func(mcpRegistrationTarget) error
}

const (
	mcpEntityToolsModuleName    = "entity-tools"
	mcpHierarchyToolsModuleName = "hierarchy-tools"
	mcpSearchToolsModuleName    = "search-tools"
	mcpCacheToolsModuleName     = "cache-tools"
	mcpPSGCResourceModuleName   = "psgc-resources"
)

type registrationDeps struct {
	client    *psgc.Client
	resolver  *hierarchy.Resolver
	validator *hierarchy.Validator
	observer  domain.Observer
	notify    domain.ResourceUpdateNotifier
}

type mcpServerRegistrationAdapter struct {
	server *mcp.Server
}

func (r mcpServerRegistrationAdapter) AddTool(registration toolRegistration) {
	registration.add(r.server)
}

func (r mcpServerRegistrationAdapter) AddResourceTemplate(resourceTemplate *mcp.ResourceTemplate, handler mcp.ResourceHandler) {
	r.server.AddResourceTemplate(resourceTemplate, handler)
}

func (r mcpServerRegistrationAdapter) AddResource(resource *mcp.Resource, handler mcp.ResourceHandler) {
	r.server.AddResource(resource, handler)
}

func newRegistrationModules(deps registrationDeps) []mcpRegistrationModule {
	return []mcpRegistrationModule{
		{
			name: mcpEntityToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(registrar mcpRegistrationTarget) error {
				return registerEntityTools(registrar, deps.client, deps.observer)
			},
		},
		{
			name: mcpHierarchyToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(registrar mcpRegistrationTarget) error {
				return registerHierarchyTools(registrar, deps.resolver, deps.validator, deps.observer)
			},
		},
		{
			name: mcpSearchToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(registrar mcpRegistrationTarget) error {
				return registerTool(registrar, newToolRegistration(deps.observer, domain.SearchTool(), domain.SearchHandler(deps.client)))
			},
		},
		{
			name: mcpCacheToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(registrar mcpRegistrationTarget) error {
				return registerCacheTools(registrar, deps.client, deps.observer, deps.notify)
			},
		},
		{
			name: mcpPSGCResourceModuleName,
			kind: mcpRegistrationKindResources,
			register: func(registrar mcpRegistrationTarget) error {
				registerPSGCResources(registrar, deps.client)
				return nil
			},
		},
	}
}
