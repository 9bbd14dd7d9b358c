package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func historyCommand(opts *options) *cli.Command {
	var limit int64

	return &cli.Command{
		Name:  "history",
		Usage: "Print recent sessions and per-subject progress",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "Maximum number of sessions to print",
				Value:       10,
				Destination: &limit,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if limit <= 0 {
				return goerr.New("limit must be positive", goerr.V("limit", limit))
			}

			a, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			sessions, err := a.repo.RecentSessions(ctx, int(limit))
			if err != nil {
				return goerr.Wrap(err, "failed to list sessions")
			}

			w := c.Root().Writer
			if len(sessions) == 0 {
				fmt.Fprintln(w, "No sessions yet.")
				return nil
			}
			for _, s := range sessions {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\tclass %s\t%s\n",
					s.ID,
					s.Timestamp,
					s.PersonaName,
					s.Subject,
					s.ClassLevel,
					s.Question,
				)
			}

			progress, err := a.repo.ListProgress(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to list progress")
			}
			fmt.Fprintln(w)
			for _, p := range progress {
				fmt.Fprintf(w, "%s\t%d sessions\tlast %s\n", p.Subject, p.SessionCount, p.LastAccessed)
			}
			return nil
		},
	}
}
