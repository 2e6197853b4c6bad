package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtgtools/buylistdb/internal/app"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the daily cache",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cache status",
	Long: `Show whether any data is cached, which namespaces are still valid
today, and the date the cache is compared against. Entries from earlier
days are expired and will be refetched on the next run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		status, err := application.CacheStatus()
		if err != nil {
			return fmt.Errorf("failed to read cache status: %w", err)
		}

		fmt.Printf("As of date: %s\n", status.AsOfDate)
		if !status.HasAny {
			fmt.Println("Cache is empty")
			return nil
		}
		if len(status.ValidNamespaces) == 0 {
			fmt.Println("No namespaces are valid today")
			return nil
		}
		fmt.Printf("Valid namespaces (%d): %s\n", len(status.ValidNamespaces), strings.Join(status.ValidNamespaces, ", "))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached data",
	Long: `Clear removes cached data. Without a prefix everything goes; with
--prefix only matching namespaces are removed, so catalog data ("set:")
and price data ("price:") can be cleared independently.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix, _ := cmd.Flags().GetString("prefix")

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		if err := application.ClearCache(prefix); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}

		if prefix == "" {
			fmt.Println("Cache cleared")
		} else {
			fmt.Printf("Cache cleared for prefix %q\n", prefix)
		}
		return nil
	},
}

func init() {
	cacheClearCmd.Flags().String("prefix", "", "only clear namespaces with this prefix (e.g. 'set:' or 'price:')")
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
