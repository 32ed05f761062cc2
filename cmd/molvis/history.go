package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/san-kum/molvis/internal/colormap"
	"github.com/san-kum/molvis/internal/config"
	"github.com/san-kum/molvis/internal/stats"
	"github.com/san-kum/molvis/internal/store"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no renders found")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"ID", "TIME", "OUTPUT", "MODE", "FRAMES", "POINTS", "ELAPSED"})
	for _, run := range runs {
		table.Append([]string{
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Output,
			run.Mode,
			strconv.Itoa(run.Encoded),
			strconv.Itoa(run.Points),
			fmt.Sprintf("%.2fs", run.Elapsed),
		})
	}
	table.Render()
	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	run, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadStats(args[0])
	if err != nil {
		return err
	}
	return store.WriteJSON(os.Stdout, struct {
		*store.Run
		Stats []stats.Frame `json:"stats"`
	}{run, frames})
}

func listPresets(cmd *cobra.Command, args []string) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"PRESET", "REALTIME", "PALETTE", "CUBE", "RECENTER", "OUTPUT"})
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		table.Append([]string{
			name,
			strconv.FormatBool(cfg.Realtime),
			cfg.Colors.Palette,
			cfg.CubeSize,
			strconv.FormatBool(cfg.Scene.Recenter),
			cfg.Output,
		})
	}
	table.Render()
	return nil
}

func listPalettes(cmd *cobra.Command, args []string) error {
	for _, name := range colormap.Names() {
		cm, err := colormap.Named(name)
		if err != nil {
			return err
		}
		fmt.Printf("%-10s", name)
		for _, s := range cm.Stops() {
			fmt.Printf("  %.2f:%s", s.Pos, s.Color.Hex())
		}
		fmt.Println()
	}
	return nil
}
