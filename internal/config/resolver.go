package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/longkey1/chatbot/internal/gemini"
)

// expandEnvVar expands environment variable references in the given value
// Supports both $VAR and ${VAR} syntax
// If the environment variable is not set, returns empty string.
func expandEnvVar(value string) string {
	if !strings.HasPrefix(value, "$") {
		return value
	}

	var envVarName string
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVarName = value[2 : len(value)-1]
	} else {
		envVarName = strings.TrimPrefix(value, "$")
	}

	return os.Getenv(envVarName)
}

// Endpoint returns the URL requests are posted to.
// api_url wins; otherwise the URL is composed from the gemini_* settings.
func (c *Config) Endpoint() (string, error) {
	if c.APIURL != "" {
		return c.APIURL, nil
	}
	if c.GeminiToken == "" {
		return "", fmt.Errorf("API endpoint is not configured. Set api_url in the config file or CHATBOT_API_URL, or provide gemini_token (CHATBOT_GEMINI_TOKEN / GEMINI_API_KEY)")
	}
	return gemini.EndpointURL(c.GeminiBaseURL, c.Model, c.GeminiToken), nil
}

// LoadEnvFile loads variables from a .env file without overriding ones that
// are already set. A missing file is not an error.
func LoadEnvFile(path, configFile string) (bool, error) {
	if path == "" {
		return false, nil
	}
	resolved, err := ResolvePath(path, configFile)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(resolved); os.IsNotExist(err) {
		return false, nil
	}
	if err := godotenv.Load(resolved); err != nil {
		return false, fmt.Errorf("error loading env file '%s': %w", resolved, err)
	}
	return true, nil
}

// ResolvePath converts a relative path to absolute path if needed.
// Relative paths are resolved against the directory of configFile, or the
// current working directory when no config file is used.
func ResolvePath(path, configFile string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}

	if configFile == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("error getting current working directory: %v", err)
		}
		return filepath.Join(cwd, path), nil
	}

	configDir := filepath.Dir(configFile)
	if !filepath.IsAbs(configDir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("error getting current working directory: %v", err)
		}
		configDir = filepath.Join(cwd, configDir)
	}

	return filepath.Join(configDir, path), nil
}

// MaskToken returns a masked version of the token for display
func MaskToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// MaskURL masks the key query parameter of an endpoint URL
func MaskURL(url string) string {
	i := strings.Index(url, "key=")
	if i < 0 {
		return url
	}
	rest := url[i+len("key="):]
	end := strings.IndexByte(rest, '&')
	if end < 0 {
		return url[:i] + "key=" + MaskToken(rest)
	}
	return url[:i] + "key=" + MaskToken(rest[:end]) + rest[end:]
}
