package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Navigate to a route and show where it settles",
	Long: `Run a path through the navigation guard and print the route the
transition settles on. Useful for checking what a given session can
reach, e.g.:

  library-client open /admin/books`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		settled, err := app.nav.Navigate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if settled == args[0] {
			fmt.Println(settled)
		} else {
			fmt.Printf("%s -> %s\n", args[0], settled)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
