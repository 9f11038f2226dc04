package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		app.sessions.Load(cmd.Context())
		current := app.sessions.Current()
		if !current.Authenticated() {
			fmt.Println("not signed in")
			return nil
		}

		fmt.Printf("username:   %s\n", current.Username)
		fmt.Printf("role:       %s\n", current.Role)
		fmt.Printf("user id:    %s\n", current.ID)
		if current.Email != "" {
			fmt.Printf("email:      %s\n", current.Email)
		}
		if current.StudentID != "" {
			fmt.Printf("student id: %s\n", current.StudentID)
		}
		if current.Avatar != "" {
			fmt.Printf("avatar:     %s%s\n", app.client.AssetBase(), current.Avatar)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
