package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/results"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List previously downloaded audio files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			files := results.Discover(cfg.Paths.Downloads)
			if len(files) == 0 {
				fmt.Println("No downloads found in", cfg.Paths.Downloads)
				return nil
			}
			for _, f := range files {
				fmt.Println(filepath.Base(f))
			}
			return nil
		},
	}
}
