package cli

import (
	"context"

	"github.com/spf13/cobra"

	apperr "github.com/Aishwarya3011/gapr-sub000/pkg/errors"
	skio "github.com/Aishwarya3011/gapr-sub000/pkg/io"
	"github.com/Aishwarya3011/gapr-sub000/pkg/skeleton"
)

// sourceFlags select where a command's graph comes from.
type sourceFlags struct {
	snapshot   string
	historyDir string
	to         uint32
	workers    int
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.snapshot, "snapshot", "", "load this JSON snapshot instead of replaying the history")
	cmd.Flags().StringVar(&f.historyDir, "history", "", "commit directory (overrides the configured history backend)")
	cmd.Flags().Uint32Var(&f.to, "to", 0, "replay only commits below this id")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "parallel commit decoders (default from config, 0 means one per CPU)")
	cmd.MarkFlagsMutuallyExclusive("snapshot", "history")
	_ = cmd.RegisterFlagCompletionFunc("snapshot", completeSnapshot)
	registerHistoryCompletion(cmd)
}

// openStore builds the graph selected by f. The replay result is nil when
// the graph came from a snapshot file.
func (c *CLI) openStore(ctx context.Context, f sourceFlags) (*skeleton.Store, *replayResult, error) {
	if f.snapshot != "" {
		prog := newProgress(loggerFromContext(ctx))
		st, err := skio.ImportJSON(f.snapshot)
		if err != nil {
			return nil, nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "read snapshot %s", f.snapshot)
		}
		s, err := newStoreFrom(st)
		if err != nil {
			return nil, nil, err
		}
		prog.done("Loaded snapshot " + f.snapshot)
		return s, nil, nil
	}

	hs, err := c.openHistory(ctx, f.historyDir)
	if err != nil {
		return nil, nil, err
	}
	defer hs.Close()
	cc, err := c.openCache(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer cc.Close()

	workers := f.workers
	if workers == 0 {
		workers = c.Config.Replay.Workers
	}
	sp := newSpinner(ctx, c.status, "Replaying history...")
	sp.Start()
	res, err := c.replay(ctx, hs, cc, replayOptions{Workers: workers, To: f.to, TTL: c.Config.Cache.TTL})
	sp.Stop()
	if err != nil {
		return nil, nil, err
	}
	if err := c.applyDefaultFilter(ctx, res.Store); err != nil {
		return nil, nil, err
	}
	return res.Store, res, nil
}

// applyDefaultFilter applies the configured bbox, if any.
func (c *CLI) applyDefaultFilter(ctx context.Context, s *skeleton.Store) error {
	box, err := c.Config.Filter.Box()
	if err != nil || box.Empty() {
		return err
	}
	_, err = s.Select(ctx, "bbox", func(l *skeleton.Loader) error {
		return l.Filter(box)
	})
	return err
}
