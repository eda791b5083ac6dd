package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simonhull/exifmeta"
)

func newVersionCmd(a *app) *cobra.Command {
	var skipExifTool bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print exifmeta and exiftool versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := exifmeta.GetVersionInfo()
			if !skipExifTool {
				if et, err := exifmeta.New(a.cfg.Options(a.logger)...); err != nil {
					a.logger.Warn("exiftool unavailable", zap.Error(err))
				} else {
					defer et.Close()
					if full, err := et.VersionInfo(cmd.Context()); err == nil {
						info = full
					} else {
						a.logger.Warn("exiftool version failed", zap.Error(err))
					}
				}
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), info)
			return err
		},
	}

	cmd.Flags().BoolVar(&skipExifTool, "no-exiftool", false, "do not start exiftool to query its version")
	return cmd
}
