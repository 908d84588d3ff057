package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	appmedia "videosvc/internal/application/media"
	"videosvc/internal/config"
	mediadomain "videosvc/internal/domain/media"
	"videosvc/internal/infrastructure/ffmpeg"
)

func newPlanCommand(loadConfig func() (config.Config, error)) *cobra.Command {
	var format string
	var skipThumbnail bool

	cmd := &cobra.Command{
		Use:   "plan <file>",
		Short: "Probe a file and print the steps a task would run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			source := args[0]
			target := mediadomain.DeliveryTarget(format)
			runner := ffmpeg.NewRunner(cfg.FFmpegBin, cfg.FFprobeBin, nil)

			dims, err := runner.Probe(cmd.Context(), source)
			if err != nil {
				return err
			}
			if err := appmedia.ValidateFormat(dims.AspectRatio(), target); err != nil {
				return err
			}

			steps := appmedia.PlanSteps(source, dims, target, skipThumbnail)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %gx%g (%s)\n", source, dims.Width, dims.Height, target)
			fmt.Fprintln(out, renderSteps(steps))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(mediadomain.TargetHome), "Delivery target: home or flash")
	cmd.Flags().BoolVar(&skipThumbnail, "skip-thumbnail", false, "Leave out the thumbnail step")
	return cmd
}

func renderSteps(steps []appmedia.Step) string {
	rows := make([][]string, 0, len(steps))
	for i, step := range steps {
		height := ""
		if step.Height > 0 {
			height = strconv.Itoa(step.Height) + "p"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			string(step.Kind),
			height,
			step.Output,
		})
	}
	return renderTable(
		[]string{"#", "Step", "Height", "Output"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
	)
}
