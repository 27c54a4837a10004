package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"neurobiomark/internal/adminclient"
	"neurobiomark/internal/domain"
)

// settleTimeout bounds the wait for pending input and fetches at end of input.
const settleTimeout = 10 * time.Second

func newBrowseCmd(opts *options) *cobra.Command {
	var quiet time.Duration
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse requests interactively",
		Long: `Reads one command per line from stdin and reprints the list whenever it changes.

  /search <text>       filter by name or email, applied once typing pauses
  /status <s>          new, contacted, responded or all
  /page <n>            go to page n
  /next, /prev         move one page
  /select <id>         toggle selection
  /set <id> <status>   set the follow-up status
  /notes <id> <text>   replace the internal notes
  /delete <id>         delete one request
  /delete-selected     delete every selected request
  /refresh             refetch the current page
  /quit                leave`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return browse(cmd.Context(), opts, quiet)
		},
	}
	cmd.Flags().DurationVar(&quiet, "quiet", adminclient.DefaultQuietInterval, "search debounce interval")
	return cmd
}

func browse(ctx context.Context, opts *options, quiet time.Duration) error {
	var outMu sync.Mutex
	printf := func(format string, args ...any) {
		outMu.Lock()
		defer outMu.Unlock()
		fmt.Fprintf(opts.out, format, args...)
	}

	list := adminclient.NewRequestList(opts.client(), adminclient.ListConfig{
		QuietInterval: quiet,
		OnChange: func(v adminclient.View) {
			outMu.Lock()
			defer outMu.Unlock()
			_ = renderView(opts.out, v)
		},
	})
	defer list.Close()
	list.Load()

	// The reader goroutine may stay blocked on stdin after browse returns; done
	// only stops it from handing over more lines.
	done := make(chan struct{})
	defer close(done)
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(opts.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return err
				}
				return settle(ctx, list)
			}
			quit, err := handleLine(ctx, list, line)
			if err != nil {
				printf("error: %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

// handleLine applies one browse command and reports whether the session should end.
func handleLine(ctx context.Context, list *adminclient.RequestList, line string) (bool, error) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "":
	case "/quit", "/q":
		return true, nil
	case "/search":
		list.SetSearch(arg)
	case "/status":
		if arg == "all" {
			arg = ""
		}
		list.SetStatus(arg)
	case "/page":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return false, fmt.Errorf("page must be a positive number, got %q", arg)
		}
		list.SetPage(n)
	case "/next":
		v := list.View()
		if v.Pages > 0 && v.Key.Page >= v.Pages {
			return false, errors.New("already on the last page")
		}
		list.SetPage(v.Key.Page + 1)
	case "/prev":
		list.SetPage(list.View().Key.Page - 1)
	case "/select":
		if arg == "" {
			return false, errors.New("usage: /select <id>")
		}
		list.Toggle(arg)
	case "/set":
		id, status, _ := strings.Cut(arg, " ")
		st, ok := domain.ParseDemoRequestStatus(status)
		if id == "" || !ok {
			return false, errors.New("usage: /set <id> <new|contacted|responded>")
		}
		return false, list.UpdateStatus(ctx, id, st)
	case "/notes":
		id, text, _ := strings.Cut(arg, " ")
		if id == "" {
			return false, errors.New("usage: /notes <id> <text>")
		}
		return false, list.SaveNotes(ctx, id, strings.TrimSpace(text))
	case "/delete":
		if arg == "" {
			return false, errors.New("usage: /delete <id>")
		}
		return false, list.Delete(ctx, arg)
	case "/delete-selected":
		return false, list.BulkDelete(ctx)
	case "/refresh":
		list.Refresh()
	default:
		return false, fmt.Errorf("unknown command %q", cmd)
	}
	return false, nil
}

// settle waits until typed search text has applied and no fetch is in flight.
func settle(ctx context.Context, list *adminclient.RequestList) error {
	ctx, cancel := context.WithTimeout(ctx, settleTimeout)
	defer cancel()
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		v := list.View()
		if v.State != adminclient.Loading && strings.TrimSpace(v.Input) == v.Key.Search {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("list did not settle: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}
