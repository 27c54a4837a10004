// Command nbm-admin works the demo request back office from a terminal.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"neurobiomark/internal/adminclient"
)

const (
	defaultAPIURL = "http://localhost:8080"
	envAPIURL     = "NBM_API_URL"
	envAdminKey   = "NBM_ADMIN_KEY"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// options holds the persistent flags shared by every command.
type options struct {
	apiURL string
	key    string
	in     io.Reader
	out    io.Writer
}

func (o *options) client() *adminclient.Client {
	return adminclient.New(o.apiURL, o.key, nil)
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	opts := &options{in: in, out: out}
	root := &cobra.Command{
		Use:   "nbm-admin",
		Short: "NeuroBiomark back-office client",
		Long: `nbm-admin talks to the admin API with the static admin key.

The API address and key default to the NBM_API_URL and NBM_ADMIN_KEY
environment variables.`,
		SilenceUsage: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	apiURL := os.Getenv(envAPIURL)
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "url", apiURL, "API base URL")
	root.PersistentFlags().StringVar(&opts.key, "key", os.Getenv(envAdminKey), "admin API key")

	root.AddCommand(newRequestsCmd(opts))
	root.AddCommand(newHashPasswordCmd(opts))
	return root
}
