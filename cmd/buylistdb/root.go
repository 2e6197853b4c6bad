package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "buylistdb",
	Short: "Resolve card lists against catalog and buylist data",
	Long: `BuylistDB resolves a free-form card list against the MTGJSON catalog
and buylist price data, producing a ranked report of which cards are
sellable and at what price. Remote data is cached locally and refreshed
once per calendar day.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.buylistdb.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().String("cache-dir", ".", "directory for the cache database")
	rootCmd.PersistentFlags().String("cache-backend", "", "cache backend: 'sqlite' (default), 'bolt', or 'memory'")

	// Bind flags to viper
	viper.BindPFlag("cache_dir", rootCmd.PersistentFlags().Lookup("cache-dir"))
	viper.BindPFlag("cache_backend", rootCmd.PersistentFlags().Lookup("cache-backend"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in home directory and current directory
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".buylistdb")
		viper.SetConfigName("config")
	}

	// Environment variables
	viper.SetEnvPrefix("BUYLISTDB")
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
