package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer wraps the MCP server and application dependencies
type MCPServer struct {
	app       *App
	mcpServer *server.MCPServer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(app *App, version string) *MCPServer {
	mcpServer := server.NewMCPServer(
		"ytnotes-server",
		version,
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		app:       app,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools
func (s *MCPServer) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_youtube_transcript",
		mcp.WithDescription("Get the English transcript of a YouTube video from its captions. Non-English captions are machine-translated when YouTube allows it; otherwise the original language is returned with a warning. Fails if the video has captions disabled."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL"),
			mcp.Required(),
		),
	), s.handleGetTranscript)

	s.mcpServer.AddTool(mcp.NewTool("generate_youtube_notes",
		mcp.WithDescription("Generate detailed structured notes for a YouTube video from its transcript and write them to a PDF file. Returns the notes text and the PDF path. Requires an API key for the generation service."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL"),
			mcp.Required(),
		),
	), s.handleGenerateNotes)
}

// handleGetTranscript implements the get_youtube_transcript tool
func (s *MCPServer) handleGetTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	MCPLogInfo("get_youtube_transcript url=%s", url)

	transcript, err := s.app.GetTranscript(ctx, url)
	if err != nil {
		MCPLogError("get_youtube_transcript url=%s kind=%s: %v", url, KindOf(err), err)
		return mcp.NewToolResultErrorFromErr(KindOf(err).String(), err), nil
	}

	var buf strings.Builder
	if transcript.Warning != "" {
		buf.WriteString(fmt.Sprintf("Warning: %s\n\n", transcript.Warning))
	}
	buf.WriteString(transcript.Text)

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(buf.String())},
	}, nil
}

// handleGenerateNotes implements the generate_youtube_notes tool
func (s *MCPServer) handleGenerateNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	MCPLogInfo("generate_youtube_notes url=%s", url)

	notes, err := s.app.GenerateNotes(ctx, url)
	if err != nil {
		MCPLogError("generate_youtube_notes url=%s kind=%s: %v", url, KindOf(err), err)
		return mcp.NewToolResultErrorFromErr(KindOf(err).String(), err), nil
	}

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("PDF: %s\n", notes.PDFPath))
	if warning := notes.Warning(); warning != "" {
		buf.WriteString(fmt.Sprintf("Warning: %s\n", warning))
	}
	buf.WriteString("\n")
	buf.WriteString(notes.Text)

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(buf.String())},
	}, nil
}

// Start starts the MCP server using the specified transport
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	InitMCPLogging(s.app.config)

	if transport == "http" {
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)
		addr := fmt.Sprintf(":%d", port)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		MCPLogInfo("serving streamable HTTP on %s", addr)
		return httpServer.Start(addr)
	}

	MCPLogInfo("serving stdio")
	return server.ServeStdio(s.mcpServer)
}
