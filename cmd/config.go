package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/longkey1/chatbot/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const configFields = "configfile, api_url, endpoint, gemini_base_url, gemini_token, model, include_placeholder, serialize_requests, surface_errors, log_level, log_format, env_file"

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [field]",
	Short: "Display current configuration",
	Long: `Display the current configuration values.
This command shows all configuration values loaded from the config file, the env file and environment variables.

If a field name is specified, only that field's value is displayed.
Available fields: ` + configFields + `

Examples:
  chatbot config              # Show all configuration
  chatbot config endpoint     # Show only the resolved endpoint (key masked)
  chatbot config model        # Show only model`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(viper.GetViper())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		endpoint, endpointErr := cfg.Endpoint()
		if endpointErr != nil {
			endpoint = "(not configured)"
		} else {
			endpoint = config.MaskURL(endpoint)
		}

		if len(args) > 0 {
			field := strings.ToLower(args[0])
			switch field {
			case "configfile":
				fmt.Println(viper.ConfigFileUsed())
			case "api_url", "apiurl":
				fmt.Println(config.MaskURL(cfg.APIURL))
			case "endpoint":
				fmt.Println(endpoint)
			case "gemini_base_url", "geminibaseurl":
				fmt.Println(cfg.GeminiBaseURL)
			case "gemini_token", "geminitoken":
				fmt.Println(config.MaskToken(cfg.GeminiToken))
			case "model":
				fmt.Println(cfg.Model)
			case "include_placeholder":
				fmt.Println(cfg.IncludePlaceholder)
			case "serialize_requests":
				fmt.Println(cfg.SerializeRequests)
			case "surface_errors":
				fmt.Println(cfg.SurfaceErrors)
			case "log_level":
				fmt.Println(cfg.LogLevel)
			case "log_format":
				fmt.Println(cfg.LogFormat)
			case "env_file":
				fmt.Println(cfg.EnvFile)
			default:
				fmt.Fprintf(os.Stderr, "Unknown field: %s\n", args[0])
				fmt.Fprintf(os.Stderr, "Available fields: %s\n", configFields)
				os.Exit(1)
			}
			return
		}

		fmt.Printf("ConfigFile: %s\n", viper.ConfigFileUsed())
		fmt.Printf("APIURL: %s\n", config.MaskURL(cfg.APIURL))
		fmt.Printf("Endpoint: %s\n", endpoint)
		fmt.Printf("GeminiBaseURL: %s\n", cfg.GeminiBaseURL)
		fmt.Printf("GeminiToken: %s\n", config.MaskToken(cfg.GeminiToken))
		fmt.Printf("Model: %s\n", cfg.Model)
		fmt.Printf("IncludePlaceholder: %v\n", cfg.IncludePlaceholder)
		fmt.Printf("SerializeRequests: %v\n", cfg.SerializeRequests)
		fmt.Printf("SurfaceErrors: %v\n", cfg.SurfaceErrors)
		fmt.Printf("LogLevel: %s\n", cfg.LogLevel)
		fmt.Printf("LogFormat: %s\n", cfg.LogFormat)
		fmt.Printf("EnvFile: %s\n", cfg.EnvFile)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
