package api

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/budcare/budcare-registry/pkg/kit"
)

// RegisterMCPTools registers the registry MCP tools on the server, so a
// chat-bot binding can call the same operations the HTTP API serves.
func RegisterMCPTools(srv *server.MCPServer, svc *Service) {
	registerStrainInfo(srv, svc)
	registerListStrains(srv, svc)
	registerClinicInfo(srv, svc)
	registerListClinics(srv, svc)
	registerReload(srv, svc)
}

func registerStrainInfo(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("strain_info",
		mcp.WithDescription("Look up a cannabis strain by name. Tolerates typos, partial names and known aliases; returns rendered pages."),
		mcp.WithString("name", mcp.Required(), mcp.Description("The strain name to look up (e.g. 'gg4')")),
	)

	kit.RegisterMCPTool(srv, tool, strainInfoEndpoint(svc), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		name, _ := args["name"].(string)
		return &kit.MCPDecodeResult{Request: &strainInfoReq{Query: name}}, nil
	})
}

func registerListStrains(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("list_strains",
		mcp.WithDescription("List all strains grouped by producer. Optionally exclude producers or show only specific ones (not both)."),
		mcp.WithString("exclude", mcp.Description("Comma- or space-separated producers to exclude (e.g. 'tilray slab')")),
		mcp.WithString("show", mcp.Description("Comma- or space-separated producers to show exclusively (e.g. 'four20 cantourage')")),
	)

	kit.RegisterMCPTool(srv, tool, listStrainsEndpoint(svc), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		exclude, _ := args["exclude"].(string)
		show, _ := args["show"].(string)
		return &kit.MCPDecodeResult{Request: &listStrainsReq{Exclude: exclude, Show: show}}, nil
	})
}

func registerClinicInfo(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("clinic_info",
		mcp.WithDescription("Find cannabis clinics by location. Tolerates typos and partial city names; returns rendered pages."),
		mcp.WithString("location", mcp.Required(), mcp.Description("The city or location to search (e.g. 'Warszawa')")),
	)

	kit.RegisterMCPTool(srv, tool, clinicInfoEndpoint(svc), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		location, _ := args["location"].(string)
		return &kit.MCPDecodeResult{Request: &clinicInfoReq{Location: location}}, nil
	})
}

func registerListClinics(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("list_clinics",
		mcp.WithDescription("List all cannabis clinics grouped by city (default) or network."),
		mcp.WithString("group", mcp.Description("Grouping axis: 'city' or 'network'")),
	)

	kit.RegisterMCPTool(srv, tool, listClinicsEndpoint(svc), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		group, _ := args["group"].(string)
		return &kit.MCPDecodeResult{Request: &listClinicsReq{GroupBy: group}}, nil
	})
}

func registerReload(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("reload_datasets",
		mcp.WithDescription("Reload both dataset snapshots from disk and report the new record counts."),
	)

	kit.RegisterMCPTool(srv, tool, reloadEndpoint(svc), func(_ mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	})
}
