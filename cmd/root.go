/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/longkey1/chatbot/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	envFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chatbot",
	Short: "A terminal chatbot backed by a generative-language API",
	Long: `chatbot keeps a conversation in memory and sends it to a generative-language
API endpoint on every turn, printing the model's reply.

The endpoint is read from api_url (CHATBOT_API_URL) or composed from
gemini_base_url, model and gemini_token. Nothing is saved when the program exits.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/chatbot/config.toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading the environment (default is env_file from config, \".env\")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// userConfigDir returns $HOME/.config/chatbot
func userConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chatbot"), nil
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("CHATBOT")
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	// API_URL is accepted as an unprefixed alias
	viper.BindEnv("api_url", "CHATBOT_API_URL", "API_URL")
	viper.BindEnv("gemini_base_url", "CHATBOT_GEMINI_BASE_URL")
	viper.BindEnv("gemini_token", "CHATBOT_GEMINI_TOKEN")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	} else {
		dir, err := userConfigDir()
		cobra.CheckErr(err)

		// System-wide config first (lower priority)
		viper.AddConfigPath("/etc/chatbot")
		viper.AddConfigPath("/usr/local/etc/chatbot")
		viper.SetConfigType("toml")
		viper.SetConfigName("config")

		systemConfigLoaded := false
		if err := viper.ReadInConfig(); err == nil {
			systemConfigLoaded = true
			if verbose {
				fmt.Fprintln(os.Stderr, "Loaded system-wide config:", viper.ConfigFileUsed())
			}
		}

		// User config (higher priority)
		viper.AddConfigPath(dir)
		if systemConfigLoaded {
			if err := viper.MergeInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					fmt.Fprintf(os.Stderr, "Error merging user config file: %v\n", err)
				}
			} else if verbose {
				fmt.Fprintln(os.Stderr, "Merged user config:", viper.ConfigFileUsed())
			}
		} else {
			if err := viper.ReadInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
				}
			}
		}
	}

	// Load the dotenv file before anything reads the environment
	dotenv := envFile
	if dotenv == "" {
		dotenv = viper.GetString("env_file")
	}
	loaded, err := config.LoadEnvFile(dotenv, viper.ConfigFileUsed())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading env file: %v\n", err)
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		if loaded {
			fmt.Fprintln(os.Stderr, "Loaded env file:", dotenv)
		}
		fmt.Fprintln(os.Stderr, "Environment variables:")
		fmt.Fprintln(os.Stderr, "  CHATBOT_API_URL:", config.MaskURL(viper.GetString("api_url")))
		fmt.Fprintln(os.Stderr, "  CHATBOT_GEMINI_BASE_URL:", viper.GetString("gemini_base_url"))
		fmt.Fprintln(os.Stderr, "  CHATBOT_MODEL:", viper.GetString("model"))
	}
}
