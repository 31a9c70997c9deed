package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/charsyam/traildb/compress"
	"github.com/charsyam/traildb/encoder"
	"github.com/charsyam/traildb/format"
	"github.com/charsyam/traildb/internal/metrics"
)

func encodeCmd() *cobra.Command {
	var (
		inputPath     string
		outputRoot    string
		groupedCodec  string
		codebookCodec string
		noChecksum    bool
		quiet         bool
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a JSON event dump into a trail directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(inputPath)
			if err != nil {
				return err
			}

			grouped, err := codecByName(groupedCodec)
			if err != nil {
				return fmt.Errorf("--grouped-codec: %w", err)
			}
			codebook, err := codecByName(codebookCodec)
			if err != nil {
				return fmt.Errorf("--codebook-codec: %w", err)
			}

			opts := []encoder.Option{
				encoder.WithGroupedCodec(grouped),
				encoder.WithCodebookCodec(codebook),
				encoder.WithChecksum(!noChecksum),
			}

			if !quiet {
				bar := progressbar.NewOptions(len(metrics.Stages),
					progressbar.OptionSetDescription("encoding"),
					progressbar.OptionSetWidth(40),
					progressbar.OptionShowCount(),
					progressbar.OptionSetTheme(progressbar.Theme{
						Saucer:        "=",
						SaucerHead:    ">",
						SaucerPadding: " ",
						BarStart:      "[",
						BarEnd:        "]",
					}),
					progressbar.OptionClearOnFinish(),
				)
				opts = append(opts, encoder.WithStageHook(func(stage string) {
					_ = bar.Add(1)
				}))
			}

			res, err := encoder.Encode(in, outputRoot, opts...)
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			fmt.Printf("wrote %d cookies, %d events, %d bytes of trails to %s\n",
				res.Info.NumCookies, res.Info.NumEvents, res.TrailsBytes, outputRoot)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "path to a JSON event dump (required)")
	cmd.Flags().StringVar(&outputRoot, "root", "", "output directory for info/trails.data/trails.codebook (required)")
	cmd.Flags().StringVar(&groupedCodec, "grouped-codec", "none", "codec for the intermediate grouped spill file: none|s2|lz4|zstd")
	cmd.Flags().StringVar(&codebookCodec, "codebook-codec", "s2", "codec for trails.codebook: none|s2|lz4|zstd")
	cmd.Flags().BoolVar(&noChecksum, "no-checksum", false, "skip writing trails.checksum")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress the progress bar")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("root")

	return cmd
}

func codecByName(name string) (compress.Codec, error) {
	switch name {
	case "none", "":
		return compress.NewNoOpCompressor(), nil
	case "s2":
		return compress.CreateCodec(format.CompressionS2)
	case "lz4":
		return compress.CreateCodec(format.CompressionLZ4)
	case "zstd":
		return compress.CreateCodec(format.CompressionZstd)
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}
