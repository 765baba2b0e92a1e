package service

import (
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/psgc-mcp/internal/geocode"
	"github.com/louisbranch/psgc-mcp/internal/hierarchy"
	"github.com/louisbranch/psgc-mcp/internal/psgc"
	"github.com/louisbranch/psgc-mcp/internal/services/mcp/domain"
)

type mcpRegistrationTarget interface {
	AddTool(toolRegistration)
	AddResourceTemplate(*mcp.ResourceTemplate, mcp.ResourceHandler)
	AddResource(*mcp.Resource, mcp.ResourceHandler)
}

// toolRegistration binds a tool definition to its typed handler.
type toolRegistration struct {
	tool *mcp.Tool
	add  func(*mcp.Server)
}

func newToolRegistration[I, O any](obs domain.Observer, tool *mcp.Tool, handler mcp.ToolHandlerFor[I, O]) toolRegistration {
	registration := toolRegistration{tool: tool}
	if tool == nil || handler == nil {
		return registration
	}
	instrumented := domain.Instrument(tool.Name, obs, handler)
	registration.add = func(server *mcp.Server) {
		mcp.AddTool(server, tool, instrumented)
	}
	return registration
}

func registerTool(registrar mcpRegistrationTarget, registration toolRegistration) error {
	if registration.tool == nil {
		return fmt.Errorf("tool is nil")
	}
	if registration.add == nil {
		return fmt.Errorf("tool %q has no handler", registration.tool.Name)
	}
	registrar.AddTool(registration)
	return nil
}

// registerEntityTools registers the list, lookup and scoped listing tools
// of every level.
func registerEntityTools(registrar mcpRegistrationTarget, client *psgc.Client, obs domain.Observer) error {
	registrations := [][]toolRegistration{
		levelTools[psgc.IslandGroup](client, obs, geocode.LevelIslandGroup),
		levelTools[psgc.Region](client, obs, geocode.LevelRegion),
		levelTools[psgc.Province](client, obs, geocode.LevelProvince),
		levelTools[psgc.District](client, obs, geocode.LevelDistrict),
		levelTools[psgc.City](client, obs, geocode.LevelCity),
		levelTools[psgc.Municipality](client, obs, geocode.LevelMunicipality),
		levelTools[psgc.CityMunicipality](client, obs, geocode.LevelCityMunicipality),
		levelTools[psgc.SubMunicipality](client, obs, geocode.LevelSubMunicipality),
		levelTools[psgc.Barangay](client, obs, geocode.LevelBarangay),
	}
	for _, group := range registrations {
		for _, registration := range group {
			if err := registerTool(registrar, registration); err != nil {
				return err
			}
		}
	}
	return nil
}

// levelTools builds the tools returning entities of level: its listing, its
// lookup, and its listing under every parent that scopes it.
func levelTools[T any](client *psgc.Client, obs domain.Observer, level geocode.Level) []toolRegistration {
	registrations := []toolRegistration{
		newToolRegistration(obs, domain.ListTool(level), domain.ListHandler[T](client, level)),
		newToolRegistration(obs, domain.GetTool(level), domain.GetHandler[T](client, level)),
	}
	for _, parent := range geocode.Levels {
		if !psgc.HasChildScope(parent, level) {
			continue
		}
		registrations = append(registrations, newToolRegistration(obs,
			domain.ChildrenTool(parent, level),
			domain.ChildrenHandler[T](client, parent, level),
		))
	}
	return registrations
}

func registerHierarchyTools(registrar mcpRegistrationTarget, resolver *hierarchy.Resolver, validator *hierarchy.Validator, obs domain.Observer) error {
	if err := registerTool(registrar, newToolRegistration(obs, domain.HierarchyTool(), domain.HierarchyHandler(resolver))); err != nil {
		return err
	}
	return registerTool(registrar, newToolRegistration(obs, domain.ValidateTool(), domain.ValidateHandler(validator)))
}

func registerCacheTools(registrar mcpRegistrationTarget, client *psgc.Client, obs domain.Observer, notify domain.ResourceUpdateNotifier) error {
	registrations := []toolRegistration{
		newToolRegistration(obs, domain.CacheStatsTool(), domain.CacheStatsHandler(client)),
		newToolRegistration(obs, domain.ClearCacheTool(), domain.ClearCacheHandler(client, notify)),
		newToolRegistration(obs, domain.CleanupCacheTool(), domain.CleanupCacheHandler(client, notify)),
	}
	for _, registration := range registrations {
		if err := registerTool(registrar, registration); err != nil {
			return err
		}
	}
	return nil
}

// registerPSGCResources registers readable PSGC resources.
func registerPSGCResources(registrar mcpRegistrationTarget, client *psgc.Client) {
	registrar.AddResource(domain.IslandGroupsResource(), domain.IslandGroupsResourceHandler(client))
	registrar.AddResource(domain.CacheStatsResource(), domain.CacheStatsResourceHandler(client))
	registrar.AddResourceTemplate(domain.EntityResourceTemplateDef(), domain.EntityResourceHandler(client))
}

// completeLevel returns the level tags starting with prefix.
func completeLevel(prefix string) []string {
	values := []string{}
	for _, level := range geocode.Levels {
		if strings.HasPrefix(string(level), prefix) {
			values = append(values, string(level))
		}
	}
	return values
}
