package internal

import (
	"fmt"
	"os"
)

// FileExists checks if a file exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// EnsureDirs creates directories if needed
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if !FileExists(dir) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateAPIKey checks if the API key is set and returns a standardized error if not
func ValidateAPIKey(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("API key is required - set GOOGLE_API_KEY (or YTNOTES_API_KEY) in the environment, a .env file or config.toml")
	}
	return nil
}
