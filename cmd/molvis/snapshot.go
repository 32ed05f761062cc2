package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/molvis/internal/export"
)

func runSnapshot(cmd *cobra.Command, args []string) error {
	path := "frame.svg"
	if cmd.Flags().Changed("output") {
		path = output
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".svg" && ext != ".png" {
		return fmt.Errorf("snapshot output must be .svg or .png, got %q", ext)
	}

	cfg, err := mergeConfig(cmd)
	if err != nil {
		return err
	}
	// no video is written, so the video output settings do not apply
	cfg.Realtime = true
	if err := cfg.Validate(); err != nil {
		return err
	}

	p, err := buildPipeline(cfg, pathsFromArgs(args))
	if err != nil {
		return err
	}
	if err := p.show(snapshotFrame); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if ext == ".svg" {
		err = export.SVG(f, p.scene)
	} else {
		err = export.PNG(f, p.scene)
	}
	if err != nil {
		return err
	}
	log.Noticef("wrote frame %d to %s", snapshotFrame, path)
	return f.Close()
}
