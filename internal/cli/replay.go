package cli

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Aishwarya3011/gapr-sub000/pkg/cache"
	"github.com/Aishwarya3011/gapr-sub000/pkg/delta"
	apperr "github.com/Aishwarya3011/gapr-sub000/pkg/errors"
	"github.com/Aishwarya3011/gapr-sub000/pkg/history"
	skio "github.com/Aishwarya3011/gapr-sub000/pkg/io"
	"github.com/Aishwarya3011/gapr-sub000/pkg/skeleton"
)

// replayResult describes a store rebuilt from a commit history.
type replayResult struct {
	Store   *skeleton.Store
	History *history.History
	Hash    string // content hash of the replayed commits
	Applied uint32 // commits 1..Applied were applied
	Cached  bool   // the store was loaded from the snapshot cache
}

type replayOptions struct {
	Workers int
	To      uint32 // replay commits below this id; 0 replays all
	TTL     time.Duration
}

// replay rebuilds a store from the gap-free body of hs. Commits are decoded
// in parallel and applied in id order. The resulting snapshot is cached
// under the hash of the commit files, so an unchanged history is loaded
// instead of replayed.
func (c *CLI) replay(ctx context.Context, hs history.Store, cc cache.Cache, opts replayOptions) (*replayResult, error) {
	logger := loggerFromContext(ctx).With("run", uuid.NewString()[:8])

	h, err := history.Rebuild(ctx, hs)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeHistoryNotFound, err, "read history")
	}
	if len(h.Tail) > 0 {
		logger.Warn("commits after a gap are not replayed", "body", h.Base, "tail", h.Tail)
	}
	end := h.BodyCount()
	if opts.To > 0 && opts.To-1 < end {
		end = opts.To - 1
	}

	prog := newProgress(logger)
	raws := make([][]byte, 0, end)
	hasher := cache.NewHasher()
	err = hs.Range(ctx, 1, end+1, func(id uint32, data []byte) error {
		raws = append(raws, data)
		hasher.Add(data)
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeHistoryNotFound, err, "read commits")
	}
	res := &replayResult{History: h, Hash: hasher.Sum(), Applied: end}
	key := c.keyer().SnapshotKey(res.Hash, end)

	if s, ok := cachedSnapshot(ctx, cc, key); ok {
		res.Store, res.Cached = s, true
		prog.done(fmt.Sprintf("Loaded snapshot of %d commits from cache", end))
		return res, nil
	}

	infos, deltas, err := decodeAll(ctx, raws, opts.Workers)
	if err != nil {
		return nil, err
	}

	s := skeleton.New()
	for i, d := range deltas {
		if _, err := s.Commit(ctx, infos[i], d); err != nil {
			return nil, err
		}
		if (i+1)%1000 == 0 {
			logger.Debug("replaying", "commit", i+1, "of", end)
		}
	}
	res.Store = s
	prog.done(fmt.Sprintf("Replayed %d commits", end))

	r := s.Reader()
	data, err := skio.MarshalJSON(r.Dump())
	r.Close()
	if err == nil {
		err = cc.Set(ctx, key, data, opts.TTL)
	}
	if err != nil {
		logger.Warn("snapshot not cached", "err", err)
	}
	return res, nil
}

// decodeAll decodes commit files concurrently. raws[i] must hold commit
// i+1.
func decodeAll(ctx context.Context, raws [][]byte, workers int) ([]delta.CommitInfo, []delta.Delta, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	infos := make([]delta.CommitInfo, len(raws))
	deltas := make([]delta.Delta, len(raws))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, raw := range raws {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			info, d, err := delta.Unmarshal(raw)
			if err != nil {
				return apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode commit %d", i+1)
			}
			if info.ID != uint32(i+1) {
				return apperr.New(apperr.ErrCodeInvalidFormat, "commit %d is stored as %d", info.ID, i+1)
			}
			infos[i], deltas[i] = info, d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return infos, deltas, nil
}

// cachedSnapshot loads the snapshot stored under key, if any.
func cachedSnapshot(ctx context.Context, cc cache.Cache, key string) (*skeleton.Store, bool) {
	logger := loggerFromContext(ctx)
	data, ok, err := cc.Get(ctx, key)
	if err != nil {
		logger.Warn("cache lookup failed", "err", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	st, err := skio.UnmarshalJSON(data)
	if err == nil {
		var s *skeleton.Store
		if s, err = newStoreFrom(st); err == nil {
			return s, true
		}
	}
	logger.Warn("ignoring bad cached snapshot", "key", key, "err", err)
	_ = cc.Delete(ctx, key)
	return nil, false
}

// newStoreFrom builds a committed store holding st.
func newStoreFrom(st skeleton.State) (*skeleton.Store, error) {
	s := skeleton.New()
	l := s.Loader()
	err := l.Load(st)
	l.Close()
	u := s.Updater()
	defer u.Close()
	if err != nil {
		return nil, err
	}
	if _, err := u.Apply(); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *CLI) replayCommand() *cobra.Command {
	var (
		src   sourceFlags
		out   string
		check bool
	)
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Rebuild the skeleton from the commit history",
		Long: `Replay rebuilds the skeleton graph by applying every commit of the history
in order, then prints a summary. Commits are decoded in parallel; the
resulting snapshot is cached by the content hash of the history.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, res, err := c.openStore(ctx, src)
			if err != nil {
				return err
			}

			r := s.Reader()
			defer r.Close()
			if check {
				if err := r.Check(); err != nil {
					return apperr.Wrap(apperr.ErrCodeCorrupt, err, "consistency check")
				}
				printSuccess("Consistency check passed")
			}
			printSummary(r, res)
			if out != "" {
				if err := skio.ExportJSON(r.Dump(), out); err != nil {
					return err
				}
				printFile(out)
			}
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the resulting snapshot to this JSON file")
	cmd.Flags().BoolVar(&check, "check", false, "verify structural invariants after replay")
	return cmd
}
