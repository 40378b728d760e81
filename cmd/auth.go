package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pders01/neuronest/internal/models"
	"github.com/pders01/neuronest/internal/ui"
	"github.com/pders01/neuronest/internal/views"
	"github.com/spf13/cobra"
)

var (
	loginUsername  string
	loginPassword  string
	signupUsername string
	signupPassword string
	signupConfirm  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to NeuroNest",
	Long: `Log in and keep the session for later commands.

Missing credentials are prompted for when a terminal is attached.

Examples:
  neuronest login
  neuronest login --username alice`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a NeuroNest account",
	Long: `Create an account. Usernames need at least 3 characters and
passwords at least 6. You log in separately afterwards.`,
	Args: cobra.NoArgs,
	RunE: runSignup,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var accountCmd = &cobra.Command{
	Use:     "account",
	Aliases: []string{"whoami"},
	Short:   "Show the logged in account",
	Args:    cobra.NoArgs,
	RunE:    runAccount,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(accountCmd)

	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")

	signupCmd.Flags().StringVarP(&signupUsername, "username", "u", "", "Username")
	signupCmd.Flags().StringVarP(&signupPassword, "password", "p", "", "Password")
	signupCmd.Flags().StringVar(&signupConfirm, "confirm", "", "Password confirmation (defaults to --password)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	creds := models.Credentials{Username: loginUsername, Password: loginPassword}
	if err := a.prompt.Login(ctx, &creds); err != nil {
		if errors.Is(err, ui.ErrHeadless) {
			return fmt.Errorf("username and password are required: %w", err)
		}
		return err
	}

	form := views.NewLoginForm(a.session)
	form.Username, form.Password = creds.Username, creds.Password

	err = a.busy("Logging in...", func() error { return form.Submit(ctx) })
	if err != nil {
		fmt.Fprintln(out, ui.ErrorBox(form.Err()))
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Logged in as %s", a.session.User().Username)))
	return nil
}

func runSignup(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	form := views.NewSignupForm(a.session)
	form.Username, form.Password, form.Confirm = signupUsername, signupPassword, signupConfirm
	if form.Confirm == "" {
		form.Confirm = form.Password
	}
	if form.Username == "" || form.Password == "" {
		if err := a.prompt.Signup(ctx, &form.Username, &form.Password, &form.Confirm); err != nil {
			if errors.Is(err, ui.ErrHeadless) {
				return fmt.Errorf("username and password are required: %w", err)
			}
			return err
		}
	}

	username := strings.TrimSpace(form.Username)
	err = a.busy("Creating account...", func() error {
		user, err := form.Submit(ctx)
		if user != nil {
			username = user.Username
		}
		return err
	})
	if err != nil {
		fmt.Fprintln(out, ui.ErrorBox(form.Err()))
		return fmt.Errorf("signup failed: %w", err)
	}

	fmt.Fprintln(out, ui.SuccessCard(
		fmt.Sprintf("Account created for %s", username),
		"Please log in: neuronest login --username "+username,
	))
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := loadApp(commandContext(cmd))
	if err != nil {
		return err
	}
	defer a.Close()

	if err := views.NewAccount(a.session).Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	fmt.Fprintln(out, ui.Success("Logged out"))
	return nil
}

func runAccount(cmd *cobra.Command, args []string) error {
	a, err := loadApp(commandContext(cmd))
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(); err != nil {
		return err
	}
	user := views.NewAccount(a.session).User()

	fmt.Fprintln(out, ui.Card("Account", fmt.Sprintf(
		"Username:  %s\nUser ID:   %d\nMember since: %s",
		user.Username, user.ID, user.CreatedAt.Local().Format("Jan 2, 2006"),
	)))
	return nil
}
