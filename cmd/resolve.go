package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/Tenakskd/ytserver-v2/internal/media"
	"github.com/Tenakskd/ytserver-v2/internal/provider"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <s1|s2> <video-id>",
	Short: "Resolve one video and print its record as JSON",
	Args:  cobra.ExactArgs(2),
	RunE:  resolveRun,
}

func resolveRun(cmd *cobra.Command, args []string) error {
	mirror, err := media.ParseMirror(args[0])
	if err != nil {
		return err
	}

	providers, err := provider.FromConfig(cfg, provider.WithLogger(logger))
	if err != nil {
		return err
	}

	rec, err := providers[mirror].Resolve(cmd.Context(), args[1])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(rec)
}
