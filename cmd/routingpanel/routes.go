package main

import (
	"fmt"
	"text/tabwriter"

	router "github.com/fasthttp/routingpanel"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func routesCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the routes defined in the routes files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadRouter(v)
			if err != nil {
				return err
			}

			return printRoutes(cmd, r)
		},
	}
}

func printRoutes(cmd *cobra.Command, r *router.Router) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "METHOD\tNAME\tLANG\tTEMPLATE\tPATTERN")

	for _, rt := range r.Routes() {
		templates := rt.Templates()
		patterns := rt.Patterns()

		for _, lang := range templates.Langs() {
			tpl, _ := templates.Get(lang)
			pattern, _ := patterns.Get(lang)

			if lang == "" {
				lang = "-"
			}

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", rt.Method(), rt.Name(), lang, tpl, pattern)
		}
	}

	return w.Flush()
}
