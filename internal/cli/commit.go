package cli

import (
	"cmp"
	"context"
	"errors"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Aishwarya3011/gapr-sub000/pkg/delta"
	apperr "github.com/Aishwarya3011/gapr-sub000/pkg/errors"
	"github.com/Aishwarya3011/gapr-sub000/pkg/history"
)

// pendingCommit is a decoded commit file waiting to be stored.
type pendingCommit struct {
	path  string
	raw   []byte
	info  delta.CommitInfo
	delta delta.Delta
}

func (c *CLI) commitCommand() *cobra.Command {
	var (
		historyDir string
		noVerify   bool
	)
	cmd := &cobra.Command{
		Use:   "commit FILE...",
		Short: "Add commit files to the history",
		Long: `Commit decodes each file, checks that it applies cleanly on top of the
replayed history and stores it under its commit id. Files are processed in
commit id order; the first rejected commit stops the command and nothing
after it is stored.

With --no-verify the files are only decoded, so commits that arrive out of
order can be stored ahead of the gap they fill.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pending, err := readCommits(args)
			if err != nil {
				return err
			}

			hs, err := c.openHistory(ctx, historyDir)
			if err != nil {
				return err
			}
			defer hs.Close()

			if !noVerify {
				if err := c.verifyCommits(ctx, hs, pending); err != nil {
					return err
				}
			}
			for _, p := range pending {
				if err := hs.Put(ctx, p.info.ID, p.raw); err != nil {
					if errors.Is(err, history.ErrExists) {
						return apperr.New(apperr.ErrCodeConflict, "commit %d is already stored", p.info.ID)
					}
					return err
				}
				printSuccess("Stored commit %d (%s by %s)", p.info.ID, p.info.Kind, p.info.Who)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&historyDir, "history", "", "commit directory (overrides the configured history backend)")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "store without applying the commits to the replayed history")
	registerHistoryCompletion(cmd)
	return cmd
}

// readCommits decodes the files at paths, sorted by commit id.
func readCommits(paths []string) ([]pendingCommit, error) {
	out := make([]pendingCommit, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "read %s", path)
		}
		info, d, err := delta.Unmarshal(raw)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode %s", path)
		}
		if info.ID == 0 {
			return nil, apperr.New(apperr.ErrCodeInvalidFormat, "%s: commit id 0", path)
		}
		out = append(out, pendingCommit{path: path, raw: raw, info: info, delta: d})
	}
	slices.SortFunc(out, func(a, b pendingCommit) int { return cmp.Compare(a.info.ID, b.info.ID) })
	for i := 1; i < len(out); i++ {
		if out[i].info.ID == out[i-1].info.ID {
			return nil, apperr.New(apperr.ErrCodeConflict, "%s and %s both hold commit %d",
				out[i-1].path, out[i].path, out[i].info.ID)
		}
	}
	return out, nil
}

// verifyCommits applies pending on top of the replayed history. They must
// continue the history without a gap.
func (c *CLI) verifyCommits(ctx context.Context, hs history.Store, pending []pendingCommit) error {
	cc, err := c.openCache(ctx)
	if err != nil {
		return err
	}
	defer cc.Close()
	res, err := c.replay(ctx, hs, cc, replayOptions{Workers: c.Config.Replay.Workers, TTL: c.Config.Cache.TTL})
	if err != nil {
		return err
	}
	if len(res.History.Tail) > 0 {
		return apperr.New(apperr.ErrCodeConflict, "history has a gap after commit %d; use --no-verify to fill it", res.History.Base)
	}

	next := res.Applied + 1
	for _, p := range pending {
		if p.info.ID != next {
			return apperr.New(apperr.ErrCodeConflict, "%s holds commit %d, expected %d", p.path, p.info.ID, next)
		}
		if _, err := res.Store.Commit(ctx, p.info, p.delta); err != nil {
			return err
		}
		next++
	}
	return nil
}
