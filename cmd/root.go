// Package cmd implements the npa command-line interface.
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/verge88/api-npa3/cmd/common"
	"github.com/verge88/api-npa3/cmd/documents"
	"github.com/verge88/api-npa3/cmd/httpd"
)

var rootCmd = &cobra.Command{
	Use:   "npa",
	Short: "Regulatory document extraction service",
	Long: `npa extracts regulatory documents (standards, federal laws, orders and
resolutions) from MegaNorm listing and document pages, and serves them over
a JSON API or prints them on the command line.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String(common.KeyConfig, "", "config file (default is ./config.yml or $CONFIG_PATH)")
	flags.Bool(common.KeyDebug, false, "enable debug mode")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (json, console)")

	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		return initViper(rootCmd.PersistentFlags())
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "npa version %s\n", common.Version)
		},
	})

	rootCmd.AddCommand(httpd.Command())
	rootCmd.AddCommand(documents.TypesCommand())
	rootCmd.AddCommand(documents.ListCommand())
	rootCmd.AddCommand(documents.DetailCommand())
	rootCmd.AddCommand(documents.SearchCommand())
}

// initViper binds the persistent flags and NPA_* environment variables.
// Flags win over the environment, which wins over the config file.
func initViper(flags *pflag.FlagSet) error {
	viper.SetEnvPrefix("NPA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	bindings := map[string]string{
		common.KeyConfig:    common.KeyConfig,
		common.KeyDebug:     common.KeyDebug,
		common.KeyLogLevel:  "log-level",
		common.KeyLogFormat: "log-format",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind %s flag: %w", flag, err)
		}
	}
	return nil
}
