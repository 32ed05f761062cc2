package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/molvis/internal/logging"
)

var log = logging.New("molvis")

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	debug      bool

	fps         int
	realtime    int
	showTemp    int
	rotateAngle float64
	cubeSize    string
	koeff       float64
	output      string
	backend     string
	palette     string
	recenter    bool

	snapshotFrame int
)

// main is the entry point for the molvis CLI. It exits with status 1 and a
// one-line message if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "molvis POSITIONS SCALARS [TYPES]",
		Short:         "animate particle simulation frames",
		Args:          cobra.RangeArgs(0, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetLevel(logging.Verbosity(verbose, debug))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			if len(args) < 2 {
				return fmt.Errorf("need POSITIONS and SCALARS files, got %d argument(s)", len(args))
			}
			return runRender(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".molvis", "render history directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "info logging")
	rootCmd.PersistentFlags().BoolVar(&debug, "vv", false, "debug logging")
	addRenderFlags(rootCmd)

	renderCmd := &cobra.Command{
		Use:   "render POSITIONS SCALARS [TYPES]",
		Short: "play frames interactively or encode them to a video",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  runRender,
	}
	addRenderFlags(renderCmd)

	infoCmd := &cobra.Command{
		Use:   "info POSITIONS SCALARS [TYPES]",
		Short: "dataset summary",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  showInfo,
	}

	statsCmd := &cobra.Command{
		Use:   "stats POSITIONS SCALARS [TYPES]",
		Short: "plot per-frame scalar statistics",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  plotStats,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv POSITIONS SCALARS [TYPES]",
		Short: "per-frame statistics as csv",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  exportCSV,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot POSITIONS SCALARS [TYPES]",
		Short: "write one frame as svg or png",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  runSnapshot,
	}
	addRenderFlags(snapshotCmd)
	snapshotCmd.Flags().IntVar(&snapshotFrame, "frame", 0, "frame index")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list past renders",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "print one render record as json",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	palettesCmd := &cobra.Command{
		Use:   "palettes",
		Short: "list built-in colour maps",
		Args:  cobra.NoArgs,
		RunE:  listPalettes,
	}

	rootCmd.AddCommand(renderCmd, snapshotCmd, infoCmd, statsCmd, exportCSVCmd, listCmd, showCmd, presetsCmd, palettesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "molvis:", err)
		os.Exit(1)
	}
}

func addRenderFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&fps, "fps", 20, "frames per second")
	f.IntVarP(&realtime, "realtime", "r", 1, "1 for an interactive viewer, 0 to encode a video")
	f.IntVarP(&showTemp, "showtemp", "t", 1, "1 to colour by scalar, 0 to colour by type")
	f.Float64Var(&rotateAngle, "rotateangle", 3.0, "degrees of camera turn per encoded frame")
	f.StringVar(&cubeSize, "cubesize", "1000x1000x1000", "container size, WxHxD or a single integer")
	f.Float64Var(&koeff, "koeff", 1.0, "marker size multiplier")
	f.StringVar(&output, "output", "out.mp4", "video file; the extension selects the format")
	f.StringVar(&backend, "backend", "gui", "interactive viewer: gui or tui")
	f.StringVar(&palette, "palette", "heat", "colour map name")
	f.BoolVar(&recenter, "recenter", false, "shift frames by half the cube before display")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
