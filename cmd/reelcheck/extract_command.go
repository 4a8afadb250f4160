package main

import (
	"github.com/spf13/cobra"

	"reelcheck/internal/features"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var timestampsPath string
	var scriptPath string
	var extended bool
	var embeddings bool

	cmd := &cobra.Command{
		Use:   "extract <video>",
		Short: "Extract a feature vector from a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			vec, err := ctx.newBuilder(cfg).Build(cmd.Context(), features.BuildRequest{
				VideoPath:         args[0],
				TimestampsPath:    timestampsPath,
				ScriptPath:        scriptPath,
				Extended:          extended,
				IncludeEmbeddings: embeddings,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd, vec)
		},
	}

	cmd.Flags().StringVar(&timestampsPath, "timestamps", "", "Timestamps/script JSON artifact path")
	cmd.Flags().StringVar(&scriptPath, "script", "", "Script text path for semantic metrics")
	cmd.Flags().BoolVar(&extended, "extended", false, "Run the heavyweight analyzers (DNSMOS, optical flow)")
	cmd.Flags().BoolVar(&embeddings, "embeddings", false, "Include CLIP/text embeddings in the vector")

	return cmd
}
