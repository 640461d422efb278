package cli

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aishwarya3011/gapr-sub000/pkg/delta"
	apperr "github.com/Aishwarya3011/gapr-sub000/pkg/errors"
)

func (c *CLI) upgradeCommand() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "upgrade FILE...",
		Short: "Rewrite legacy commit files in the current encoding",
		Long: `Upgrade decodes each commit file and writes it back when the current
encoding differs, converting legacy payloads such as reset_proofread_0.
Files already in the current encoding are left untouched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := 0
			for _, path := range args {
				ok, err := upgradeFile(path, dryRun)
				if err != nil {
					return err
				}
				if ok {
					changed++
					printFile(path)
				}
			}
			if dryRun {
				printInfo("%d of %d files need an upgrade", changed, len(args))
			} else {
				printSuccess("Upgraded %d of %d files", changed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report files without rewriting them")
	return cmd
}

// upgradeFile rewrites path in the current encoding and reports whether it
// changed. The new file replaces the old one atomically.
func upgradeFile(path string, dryRun bool) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "read %s", path)
	}
	info, d, err := delta.Unmarshal(raw)
	if err != nil {
		return false, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode %s", path)
	}
	data, err := delta.Marshal(info, d)
	if err != nil {
		return false, err
	}
	if bytes.Equal(raw, data) {
		return false, nil
	}
	if dryRun {
		return true, nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upgrade-*")
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}
	return true, os.Rename(tmp.Name(), path)
}
