package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DeltaH-ll/library-client/internal/domain/session"
)

var (
	loginUsername string
	loginPassword string
)

// loginResponse is the credential-exchange envelope the server answers
// a successful login with.
type loginResponse struct {
	Msg  string `json:"msg"`
	Data struct {
		ID        string `json:"id"`
		Username  string `json:"username"`
		Role      string `json:"role"`
		Token     string `json:"token"`
		Email     string `json:"email"`
		StudentID string `json:"studentId"`
		Avatar    string `json:"avatar"`
	} `json:"data"`
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		var resp loginResponse
		err = app.client.Post(ctx, "/auth/login", map[string]string{
			"username": loginUsername,
			"password": loginPassword,
		}, &resp)
		if err != nil {
			return err
		}

		app.sessions.Login(ctx, session.Identity{
			Username:  resp.Data.Username,
			Role:      session.Role(resp.Data.Role),
			ID:        resp.Data.ID,
			Token:     resp.Data.Token,
			Email:     resp.Data.Email,
			StudentID: resp.Data.StudentID,
			Avatar:    resp.Data.Avatar,
		})

		landed, err := app.nav.Navigate(ctx, "/")
		if err != nil {
			return err
		}

		current := app.sessions.Current()
		fmt.Printf("signed in as %s (%s)\n", current.Username, current.Role)
		fmt.Printf("landing page: %s\n", landed)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "account username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(loginCmd)
}
