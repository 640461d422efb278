package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aishwarya3011/gapr-sub000/pkg/delta"
	apperr "github.com/Aishwarya3011/gapr-sub000/pkg/errors"
	"github.com/Aishwarya3011/gapr-sub000/pkg/history"
)

func (c *CLI) historyCommand() *cobra.Command {
	var historyDir string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the commit history",
	}
	cmd.PersistentFlags().StringVar(&historyDir, "history", "", "commit directory (overrides the configured history backend)")
	registerHistoryCompletion(cmd)

	cmd.AddCommand(c.historyInfoCommand(&historyDir))
	cmd.AddCommand(c.historyLogCommand(&historyDir))
	cmd.AddCommand(c.historyStatsCommand(&historyDir))
	return cmd
}

func (c *CLI) historyInfoCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the replayable body and the commits stored after a gap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			hs, err := c.openHistory(ctx, *dir)
			if err != nil {
				return err
			}
			defer hs.Close()

			h, err := history.Rebuild(ctx, hs)
			if err != nil {
				return err
			}
			n, err := hs.Count(ctx)
			if err != nil {
				return err
			}
			printKeyValue("commits", fmt.Sprint(n))
			printKeyValue("body", fmt.Sprintf("1..%d", h.BodyCount()))
			if len(h.Tail) > 0 {
				printKeyValue("tail", fmt.Sprint(h.Tail))
				printWarning("Commit %d is missing; later commits are not replayed", h.BodyCount()+1)
			}
			return nil
		},
	}
}

func (c *CLI) historyLogCommand(dir *string) *cobra.Command {
	var from, to uint32
	cmd := &cobra.Command{
		Use:   "log",
		Short: "List commit headers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			hs, err := c.openHistory(ctx, *dir)
			if err != nil {
				return err
			}
			defer hs.Close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tKIND\tWHO\tWHEN\tNID0\tNODES")
			err = hs.Range(ctx, from, to, func(id uint32, data []byte) error {
				info, d, err := delta.Unmarshal(data)
				if err != nil {
					return &apperr.CommitError{Commit: id, Err: apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode")}
				}
				when := time.UnixMilli(int64(info.When)).UTC().Format(time.RFC3339)
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\n", info.ID, info.Kind, info.Who, when, info.Nid0, delta.NodeCount(d))
				return nil
			})
			if err != nil {
				return err
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Uint32Var(&from, "from", 1, "first commit id")
	cmd.Flags().Uint32Var(&to, "to", 0, "stop before this commit id (0 for all)")
	return cmd
}

// userStats is the patch statistics of one author.
type userStats struct {
	Who     string      `json:"who"`
	Commits int         `json:"commits"`
	Stats   delta.Stats `json:"stats"`
	Score   float64     `json:"score"`
}

func (c *CLI) historyStatsCommand(dir *string) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the patches in the history by author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			hs, err := c.openHistory(ctx, *dir)
			if err != nil {
				return err
			}
			defer hs.Close()

			users, err := collectStats(cmd, hs)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(users)
			}
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "WHO\tCOMMITS\tEDGE NODES\tPROPS\tDELETED LINKS\tPROOFREAD\tSCORE")
			for _, u := range users {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%.1f\n", u.Who, u.Commits,
					u.Stats.AddEdgeNodes, u.Stats.AddProp, u.Stats.DelPatchLinks, u.Stats.ProofreadNodes, u.Score)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// collectStats accumulates per-author statistics, highest score first.
func collectStats(cmd *cobra.Command, hs history.Store) ([]userStats, error) {
	byWho := make(map[string]*userStats)
	err := hs.Range(cmd.Context(), 1, 0, func(id uint32, data []byte) error {
		info, d, err := delta.Unmarshal(data)
		if err != nil {
			return &apperr.CommitError{Commit: id, Err: apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode")}
		}
		u := byWho[info.Who]
		if u == nil {
			u = &userStats{Who: info.Who}
			byWho[info.Who] = u
		}
		u.Commits++
		u.Stats.Add(d)
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]userStats, 0, len(byWho))
	for _, u := range byWho {
		u.Score = u.Stats.Score()
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Who < out[j].Who
	})
	return out, nil
}
