package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "routingpanel",
		Short: "Serve routes with a routing debug panel",
		Long: `routingpanel registers the routes defined in YAML or JSON files on a
fasthttp router and serves them together with a debug panel listing every
route, its colorized match pattern and the params of the matched request.

Flags can also be set through ROUTINGPANEL_* environment variables or a
config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (yaml, json or toml)")
	flags.String("routes", "routes.yaml", "Routes files, doublestar globs allowed")
	flags.String("default-lang", "", "Default language of localized routes")

	for _, name := range []string{"routes", "default-lang"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(
		serveCmd(v),
		routesCmd(v),
	)

	return rootCmd
}

func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	v.SetEnvPrefix("routingpanel")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	file, _ := cmd.Flags().GetString("config")
	if file == "" {
		return nil
	}

	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	return nil
}
