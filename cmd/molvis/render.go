package main

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/molvis/internal/colormap"
	"github.com/san-kum/molvis/internal/config"
	"github.com/san-kum/molvis/internal/dataset"
	"github.com/san-kum/molvis/internal/encode"
	"github.com/san-kum/molvis/internal/gui"
	"github.com/san-kum/molvis/internal/mapper"
	"github.com/san-kum/molvis/internal/player"
	"github.com/san-kum/molvis/internal/present"
	"github.com/san-kum/molvis/internal/scene"
	"github.com/san-kum/molvis/internal/stats"
	"github.com/san-kum/molvis/internal/store"
	"github.com/san-kum/molvis/internal/tui"
)

// resolveConfig layers defaults, then a preset, then a config file, then
// the flags the user actually set, and validates the result.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := mergeConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("realtime") {
		cfg.Realtime = realtime != 0
	}
	if flags.Changed("showtemp") {
		cfg.ShowTemp = showTemp != 0
	}
	if flags.Changed("rotateangle") {
		cfg.RotateAngle = rotateAngle
	}
	if flags.Changed("cubesize") {
		cfg.CubeSize = cubeSize
	}
	if flags.Changed("koeff") {
		cfg.Koeff = koeff
	}
	if flags.Changed("output") {
		cfg.Output = output
	}
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("palette") {
		cfg.Colors.Palette = palette
		cfg.Colors.Stops = nil
	}
	if flags.Changed("recenter") {
		cfg.Scene.Recenter = recenter
	}
	return cfg, nil
}

func pathsFromArgs(args []string) dataset.Paths {
	p := dataset.Paths{Positions: args[0], Scalars: args[1]}
	if len(args) > 2 {
		p.Types = args[2]
	}
	return p
}

func buildColormap(cfg *config.Config) (*colormap.Colormap, error) {
	blend := colormap.Blend(cfg.Colors.Blend)
	if len(cfg.Colors.Stops) > 0 {
		colors := make([]string, len(cfg.Colors.Stops))
		positions := make([]float64, len(cfg.Colors.Stops))
		for i, s := range cfg.Colors.Stops {
			colors[i], positions[i] = s.Color, s.Pos
		}
		return colormap.New(colors, positions, blend)
	}
	cm, err := colormap.Named(cfg.Colors.Palette)
	if err != nil {
		return nil, err
	}
	if blend == colormap.BlendLab {
		return colormap.FromStops(cm.Stops(), blend)
	}
	return cm, nil
}

func parseColor(s string) (color.RGBA, error) {
	c, err := colormap.Parse(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

type pipeline struct {
	cfg    *config.Config
	paths  dataset.Paths
	data   *dataset.Dataset
	mapper *mapper.Mapper
	scene  *scene.Scene
	adv    *player.Advancer

	// rawStats describe the data as loaded, before normalisation and
	// re-centering. Only batch renders compute them.
	rawStats []stats.Frame
}

func buildPipeline(cfg *config.Config, paths dataset.Paths) (*pipeline, error) {
	ds, err := dataset.Load(paths)
	if err != nil {
		return nil, err
	}
	log.Infof("loaded %d frames of %d points", ds.Frames.Len(), ds.Frames.Points())

	var frameStats []stats.Frame
	if !cfg.Realtime {
		if frameStats, err = stats.Compute(ds); err != nil {
			return nil, err
		}
	}

	opts := mapper.Options{
		Mode:        mapper.ModeType,
		Frames:      ds.Frames.Len(),
		Types:       ds.Types,
		DefaultSize: cfg.Render.MarkerSize,
	}
	if cfg.ShowTemp {
		if err := ds.Scalars.Normalize(); err != nil {
			return nil, fmt.Errorf("%s: %w", paths.Scalars, err)
		}
		cm, err := buildColormap(cfg)
		if err != nil {
			return nil, err
		}
		opts.Mode, opts.Colormap, opts.Scalars = mapper.ModeTemperature, cm, ds.Scalars
	}
	m, err := mapper.New(opts)
	if err != nil {
		return nil, err
	}
	log.Debugf("colouring by %s", m.Mode())

	cube, err := cfg.Cube()
	if err != nil {
		return nil, err
	}
	bg, err := parseColor(cfg.Render.Background)
	if err != nil {
		return nil, err
	}
	box, err := parseColor(cfg.Render.BoxColor)
	if err != nil {
		return nil, err
	}

	sc, err := scene.Init(ds.Frames, m, scene.Options{
		Cube:        r3.Vec{X: cube.W, Y: cube.H, Z: cube.D},
		Recenter:    cfg.Scene.Recenter,
		RangeFactor: cfg.Scene.RangeFactor,
		Width:       cfg.Render.Width,
		Height:      cfg.Render.Height,
		Background:  bg,
		BoxColor:    box,
		MarkerScale: cfg.Render.MarkerScale,
	})
	if err != nil {
		return nil, err
	}
	log.Debugf("camera range %.3f", sc.Range)

	return &pipeline{
		cfg:      cfg,
		paths:    paths,
		data:     ds,
		mapper:   m,
		scene:    sc,
		adv:      player.New(ds.Frames, m, sc),
		rawStats: frameStats,
	}, nil
}

// show pushes frame i with sizes scaled by koeff.
func (p *pipeline) show(i int) error {
	pts, err := p.data.Frames.At(i)
	if err != nil {
		return err
	}
	colors, err := p.mapper.Colors(i)
	if err != nil {
		return err
	}
	return p.scene.SetData(pts, colors, p.mapper.ScaledSizes(p.cfg.Koeff))
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := buildPipeline(cfg, pathsFromArgs(args))
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	if cfg.Realtime {
		bg, _ := parseColor(cfg.Render.Background)
		switch cfg.Backend {
		case "tui":
			return tui.Run(ctx, p.scene, p.adv, tui.Options{Title: "molvis", FPS: cfg.FPS, Koeff: cfg.Koeff})
		default:
			return gui.Run(ctx, p.scene, p.adv, gui.Options{
				Title: "molvis", FPS: cfg.FPS, Koeff: cfg.Koeff,
				Width: cfg.Render.Width, Height: cfg.Render.Height,
				Background: bg, MarkerScale: cfg.Render.MarkerScale,
			})
		}
	}
	return p.batch(ctx)
}

func (p *pipeline) batch(ctx context.Context) error {
	cfg := p.cfg
	enc, err := encode.New(cfg.Output, cfg.FPS)
	if err != nil {
		return err
	}

	last := time.Now()
	res, err := present.Batch(ctx, p.scene, p.adv, enc, present.BatchOptions{
		RotateAngle: cfg.RotateAngle,
		Koeff:       cfg.Koeff,
		Progress: func(done, total int) {
			if time.Since(last) > time.Second || done == total {
				log.Infof("encoded %d/%d frames", done, total)
				last = time.Now()
			}
		},
	})
	if err != nil {
		if present.IsCancel(err) {
			return fmt.Errorf("interrupted after %d frames", res.Encoded)
		}
		return err
	}
	log.Noticef("wrote %s: %d frames, %.0f° rotation in %s", cfg.Output, res.Encoded, res.Rotation, res.Elapsed.Round(time.Millisecond))

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(store.Run{
		Positions:   p.paths.Positions,
		Scalars:     p.paths.Scalars,
		Types:       p.paths.Types,
		Output:      cfg.Output,
		Mode:        p.mapper.Mode().String(),
		Palette:     cfg.Colors.Palette,
		FPS:         cfg.FPS,
		RotateAngle: cfg.RotateAngle,
		Koeff:       cfg.Koeff,
		CubeSize:    cfg.CubeSize,
		Frames:      p.data.Frames.Len(),
		Points:      p.data.Frames.Points(),
		Encoded:     res.Encoded,
		Rotation:    res.Rotation,
		Elapsed:     res.Elapsed.Seconds(),
	}, p.rawStats)
	if err != nil {
		return fmt.Errorf("video written but history not saved: %w", err)
	}
	if err := config.Save(st.Path(runID, "config.yaml"), cfg); err != nil {
		return fmt.Errorf("video written but config not saved: %w", err)
	}
	log.Infof("saved run %s", runID)
	return nil
}
