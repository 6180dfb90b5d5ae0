package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/rtzll/ytnotes/internal"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP server for ytnotes",
	Long: `Run a Model Context Protocol (MCP) server that exposes ytnotes as tools.

The MCP server provides two tools:
- get_youtube_transcript: Fetch a video's transcript, translated to English when possible
- generate_youtube_notes: Generate structured notes and write them to a PDF

Transport options:
- stdio (default): Standard MCP transport via stdin/stdout
- http: HTTP transport on specified port (use --port to configure)`,
	Example: `  # Run MCP server with stdio transport (e.g. for Claude Desktop)
  ytnotes mcp

  # Run MCP server with HTTP transport on port 8080
  ytnotes mcp --transport=http --port=8080

  # Set up Claude Desktop integration
  ytnotes mcp setup-claude`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// stdio carries the protocol, keep the terminal quiet
		config.Verbose = false
		config.Quiet = true
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		mcpServer := internal.NewMCPServer(app, version)

		// Start the server (this will block until context is cancelled)
		return mcpServer.Start(cmd.Context(), transport, port)
	},
}

// setupClaudeCmd represents the setup-claude subcommand
var setupClaudeCmd = &cobra.Command{
	Use:   "setup-claude",
	Short: "Configure Claude Desktop to use the ytnotes MCP server",
	Long: `Register ytnotes as an MCP server in Claude Desktop's claude_desktop_config.json.

Claude Desktop starts servers from its own working directory with a minimal
environment, so the resolved settings of this shell are written into the
server entry: the API key, the transcript source, the model and the PDF path
(made absolute). Other servers and settings in the file are left untouched.`,
	Example: `  # Register with the current settings
  ytnotes mcp setup-claude

  # Register with a fixed PDF location
  ytnotes mcp setup-claude --pdf ~/Documents/youtube_notes.pdf`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ApplyTranscriptFlags(cmd, config); err != nil {
			return err
		}
		if err := internal.ApplyGenerationFlags(cmd, config); err != nil {
			return err
		}
		return setupClaudeDesktop(config)
	},
}

// mcpServerEntry is one server in claude_desktop_config.json
type mcpServerEntry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// setupClaudeDesktop writes the ytnotes entry into Claude Desktop's config
func setupClaudeDesktop(cfg *internal.Config) error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("getting executable path: %w", err)
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return fmt.Errorf("resolving executable path: %w", err)
	}

	env, err := mcpServerEnv(cfg)
	if err != nil {
		return err
	}

	configPath, err := claudeDesktopConfigPath(runtime.GOOS)
	if err != nil {
		return fmt.Errorf("getting Claude Desktop config path: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("config for Claude Desktop not found at %s", configPath)
		}
		return fmt.Errorf("reading Claude Desktop config: %w", err)
	}

	updated, err := registerMCPServer(data, "ytnotes", mcpServerEntry{
		Command: execPath,
		Args:    []string{"mcp"},
		Env:     env,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, updated, 0644); err != nil {
		return fmt.Errorf("writing Claude Desktop config: %w", err)
	}

	fmt.Printf("Registered ytnotes in %s\n", configPath)
	fmt.Printf("Notes PDFs will be written to %s\n", env["YTNOTES_PDF_PATH"])
	fmt.Printf("Restart Claude Desktop to use the ytnotes MCP server\n")
	return nil
}

// mcpServerEnv carries the resolved settings into the server's environment
func mcpServerEnv(cfg *internal.Config) (map[string]string, error) {
	pdfPath, err := filepath.Abs(cfg.PDFPath)
	if err != nil {
		return nil, fmt.Errorf("resolving PDF path: %w", err)
	}

	env := map[string]string{
		"XDG_CONFIG_HOME":           xdg.ConfigHome,
		"XDG_CACHE_HOME":            xdg.CacheHome,
		"YTNOTES_PDF_PATH":          pdfPath,
		"YTNOTES_TRANSCRIPT_SOURCE": cfg.TranscriptSource,
		"YTNOTES_MODEL":             cfg.Model,
	}
	if cfg.APIKey != "" {
		env["GOOGLE_API_KEY"] = cfg.APIKey
	}
	return env, nil
}

// registerMCPServer sets mcpServers[name], keeping every other key of the file
func registerMCPServer(data []byte, name string, entry mcpServerEntry) ([]byte, error) {
	doc := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing Claude Desktop config: %w", err)
		}
	}

	servers := map[string]json.RawMessage{}
	if raw, ok := doc["mcpServers"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &servers); err != nil {
			return nil, fmt.Errorf("parsing mcpServers: %w", err)
		}
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("encoding server entry: %w", err)
	}
	servers[name] = encoded

	serversJSON, err := json.Marshal(servers)
	if err != nil {
		return nil, fmt.Errorf("encoding mcpServers: %w", err)
	}
	doc["mcpServers"] = serversJSON

	return json.MarshalIndent(doc, "", "  ")
}

// claudeDesktopConfigPath returns where Claude Desktop keeps its config on goos
func claudeDesktopConfigPath(goos string) (string, error) {
	const name = "claude_desktop_config.json"

	if goos == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA environment variable not set")
		}
		return filepath.Join(appData, "Claude", name), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch goos {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "Claude", name), nil
	case "linux":
		return filepath.Join(homeDir, ".config", "Claude", name), nil
	default:
		return "", fmt.Errorf("unsupported platform: %s", goos)
	}
}

func init() {
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol (stdio or http)")
	mcpCmd.Flags().Int("port", 8080, "Port for HTTP transport (only used with --transport=http)")
	internal.AddTranscriptFlags(mcpCmd)
	internal.AddGenerationFlags(mcpCmd)
	internal.AddTranscriptFlags(setupClaudeCmd)
	setupClaudeCmd.Flags().StringP("model", "m", "", "Model the server uses for notes")
	setupClaudeCmd.Flags().String("pdf", "", "Path of the PDF the server writes")
	mcpCmd.AddCommand(setupClaudeCmd)
	rootCmd.AddCommand(mcpCmd)
}
