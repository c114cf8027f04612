package main

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/aerissecure/sheethtml"
)

// Tool and argument names shared by the schema and the handler.
const (
	toolConvert  = "convert_xlsx_to_html"
	argPath      = "path"
	argBeautify  = "beautify"
	argDebug     = "debug"
	argSheetName = "sheet"
)

func (a *app) mcpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the conversion as an MCP tool over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.log.Info("Serving MCP on stdio.")
			err := server.NewStdioServer(a.mcpServer()).Listen(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func (a *app) mcpServer() *server.MCPServer {
	s := server.NewMCPServer(appName, appVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.AddTool(
		mcp.NewTool(toolConvert,
			mcp.WithDescription("Render the first worksheet (or a named one) of an XLSX workbook as an HTML "+
				"<table>, keeping borders, fills, fonts, alignment and merged cells as inline CSS."),
			mcp.WithString(argPath,
				mcp.Required(),
				mcp.Description("Absolute path of the .xlsx file"),
			),
			mcp.WithString(argSheetName,
				mcp.Description("Worksheet to convert; defaults to the first one"),
			),
			mcp.WithBoolean(argBeautify,
				mcp.Description("Indent and wrap the HTML"),
			),
			mcp.WithBoolean(argDebug,
				mcp.Description("Draw a border around every cell"),
			),
		),
		a.handleConvert,
	)
	return s
}

func (a *app) handleConvert(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString(argPath)
	if err != nil || path == "" {
		return mcp.NewToolResultError(argPath + " is required"), nil
	}
	conv := a.converter(
		sheethtml.WithSheet(req.GetString(argSheetName, a.cfg.Sheet)),
		sheethtml.WithBeautify(req.GetBool(argBeautify, a.cfg.Beautify)),
		sheethtml.WithDebug(req.GetBool(argDebug, a.cfg.Debug)),
	)
	out, err := a.convertFile(conv, path)
	if err != nil {
		a.log.WithError(err).WithField("path", path).Warn("Tool conversion failed.")
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}
