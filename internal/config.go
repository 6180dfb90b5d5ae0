package internal

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application settings
type Config struct {
	// User configurable settings
	APIKey           string
	APIBaseURL       string
	Model            string
	Temperature      float64
	Languages        []string
	TranscriptSource string
	PDFPath          string
	DownloadName     string
	Addr             string
	Prompt           string
	Verbose          bool
	Quiet            bool
	MCPLogEnabled    bool

	// Fixed XDG paths (not configurable)
	ConfigDir string
	CacheDir  string
}

//go:embed config.toml prompt.txt
var defaultFS embed.FS

const (
	appName = "ytnotes"

	DefaultAPIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModel      = "gemini-2.5-flash"
	// DefaultTemperature keeps notes close to the transcript
	DefaultTemperature = 0.3
)

// ensureDefaultFile checks if a file exists in the specified directory
// and creates it from the embedded default if it doesn't exist
func ensureDefaultFile(configDir, embedFilename, description string) error {
	filePath := filepath.Join(configDir, embedFilename)

	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile(embedFilename)
	if err != nil {
		return fmt.Errorf("reading embedded default %s: %w", description, err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default %s: %w", description, err)
	}

	fmt.Fprintf(os.Stderr, "Created default %s at %s\n", description, filePath)
	return nil
}

// EnsureDefaultConfig writes the embedded config.toml into configDir if missing
func EnsureDefaultConfig(configDir string) error {
	return ensureDefaultFile(configDir, "config.toml", "configuration")
}

// EnsureDefaultPrompt writes the embedded prompt.txt into configDir if missing
func EnsureDefaultPrompt(configDir string) error {
	return ensureDefaultFile(configDir, "prompt.txt", "prompt template")
}

// InitConfig loads .env, the config file and the environment into a Config
func InitConfig() *Config {
	// .env is optional; values already in the environment win
	_ = godotenv.Load()

	configDir := filepath.Join(xdg.ConfigHome, appName)
	cacheDir := filepath.Join(xdg.CacheHome, appName)

	v := newViper(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	config := configFromViper(v)
	config.ConfigDir = configDir
	config.CacheDir = cacheDir

	return config
}

func newViper(configDir string) *viper.Viper {
	v := viper.New()

	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("model", DefaultModel)
	v.SetDefault("temperature", DefaultTemperature)
	v.SetDefault("languages", []string{"en"})
	v.SetDefault("transcript_source", "youtube")
	v.SetDefault("pdf_path", "notes.pdf")
	v.SetDefault("download_name", "youtube_notes.pdf")
	v.SetDefault("addr", ":8501")
	v.SetDefault("prompt", "")
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("mcp_log", false)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	v.SetEnvPrefix("YTNOTES")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// GOOGLE_API_KEY matches the variable the Gemini tooling uses
	_ = v.BindEnv("api_key", "YTNOTES_API_KEY", "GOOGLE_API_KEY")

	return v
}

func configFromViper(v *viper.Viper) *Config {
	return &Config{
		APIKey:           v.GetString("api_key"),
		APIBaseURL:       v.GetString("api_base_url"),
		Model:            v.GetString("model"),
		Temperature:      v.GetFloat64("temperature"),
		Languages:        v.GetStringSlice("languages"),
		TranscriptSource: v.GetString("transcript_source"),
		PDFPath:          v.GetString("pdf_path"),
		DownloadName:     v.GetString("download_name"),
		Addr:             v.GetString("addr"),
		Prompt:           v.GetString("prompt"),
		Verbose:          v.GetBool("verbose"),
		Quiet:            v.GetBool("quiet"),
		MCPLogEnabled:    v.GetBool("mcp_log"),
	}
}
