package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/intervals-mcp/internal/config"
	"github.com/teemow/intervals-mcp/internal/strava"
)

func newAuthCmd() *cobra.Command {
	var (
		clientID     string
		clientSecret string
		code         string
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Bootstrap Strava OAuth tokens",
		Long: `Bootstrap the Strava OAuth tokens the server needs for the secondary API.

Run without --code to print the authorization URL. Open it in a browser,
approve access, and copy the "code" parameter from the redirect URL. Then
run again with --code to exchange it for tokens:

  intervals-mcp auth --client-id <id> --client-secret <secret>
  intervals-mcp auth --client-id <id> --client-secret <secret> --code <code>

The resulting tokens are printed as export lines; nothing is stored on disk.
Client credentials fall back to the STRAVA_CLIENT_ID and STRAVA_CLIENT_SECRET
environment variables when the flags are not set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientID == "" {
				clientID = os.Getenv(config.EnvClientID)
			}
			if clientSecret == "" {
				clientSecret = os.Getenv(config.EnvClientSecret)
			}
			if clientID == "" {
				return fmt.Errorf("client id is required (--client-id flag or %s env var)", config.EnvClientID)
			}

			if code == "" {
				fmt.Printf("Open this URL in a browser to authorize access (scope %s):\n\n", strava.Scope)
				fmt.Printf("  %s\n\n", strava.AuthCodeURL(clientID))
				fmt.Println("Then rerun with --code <code> from the redirect URL.")
				return nil
			}

			if clientSecret == "" {
				return fmt.Errorf("client secret is required for the code exchange (--client-secret flag or %s env var)", config.EnvClientSecret)
			}

			triple, err := strava.Exchange(cmd.Context(), clientID, clientSecret, code)
			if err != nil {
				return err
			}

			fmt.Println("Authorization successful. Set these for the serve command:")
			fmt.Println()
			fmt.Printf("export %s=%s\n", config.EnvAccessToken, triple.AccessToken)
			fmt.Printf("export %s=%s\n", config.EnvRefreshToken, triple.RefreshToken)
			fmt.Printf("# access token expires at %d (unix)\n", triple.ExpiresAt)
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "Strava OAuth client ID. Can also use STRAVA_CLIENT_ID env var.")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "Strava OAuth client secret. Can also use STRAVA_CLIENT_SECRET env var.")
	cmd.Flags().StringVar(&code, "code", "", "Authorization code from the redirect URL")

	return cmd
}
