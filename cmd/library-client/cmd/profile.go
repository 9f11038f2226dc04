package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DeltaH-ll/library-client/internal/domain/session"
)

var (
	profileUsername  string
	profileEmail     string
	profileStudentID string
	profileAvatar    string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update profile fields",
	Long: `Update one or more profile fields on the server and in the local
session. Only flags that are explicitly set are sent; everything else
is left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		app.sessions.Load(ctx)
		if !app.sessions.Current().Authenticated() {
			return fmt.Errorf("not signed in")
		}

		// Only explicitly supplied flags become part of the update.
		body := map[string]string{}
		var partial session.Profile
		if cmd.Flags().Changed("username") {
			body["username"] = profileUsername
			partial.Username = &profileUsername
		}
		if cmd.Flags().Changed("email") {
			body["email"] = profileEmail
			partial.Email = &profileEmail
		}
		if cmd.Flags().Changed("student-id") {
			body["studentId"] = profileStudentID
			partial.StudentID = &profileStudentID
		}
		if cmd.Flags().Changed("avatar") {
			body["avatar"] = profileAvatar
			partial.Avatar = &profileAvatar
		}
		if len(body) == 0 {
			return fmt.Errorf("nothing to update: set at least one field flag")
		}

		if err := app.client.Put(ctx, "/user/profile", body, nil); err != nil {
			return err
		}

		app.sessions.UpdateProfile(ctx, partial)
		fmt.Println("profile updated")
		return nil
	},
}

func init() {
	profileCmd.Flags().StringVar(&profileUsername, "username", "", "new username")
	profileCmd.Flags().StringVar(&profileEmail, "email", "", "new email address")
	profileCmd.Flags().StringVar(&profileStudentID, "student-id", "", "new student id")
	profileCmd.Flags().StringVar(&profileAvatar, "avatar", "", "new avatar path")
	rootCmd.AddCommand(profileCmd)
}
