package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"point-tagger/internal/annotator"
	"point-tagger/internal/app"
	"point-tagger/internal/config"
	"point-tagger/internal/discovery"
	"point-tagger/internal/imaging"
	"point-tagger/internal/imaging/cvdecode"
	"point-tagger/internal/logger"
	"point-tagger/internal/shutdown"
	"point-tagger/internal/store"
)

const instructions = `Controls:
  left click     add a point at the cursor
  right click    remove the point under the cursor
  up / down      previous / next image
  list click     jump to an image
Points are saved next to each image as <name>.pts.
`

type flags struct {
	configPath string
	logLevel   string
	noReorder  bool
}

// session is everything built from the command line before the window opens.
type session struct {
	cfg       *config.Config
	log       *logger.ZerologAdapter
	annotator *annotator.Annotator
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "point-tagger <directory>",
		Short: "Tag images with ordered landmark points",
		Long: `point-tagger opens every image found under a directory and lets you place
ordered landmark points on each one. Points are stored in a .pts file next to
the image.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one image directory, got %d arguments\nusage: %s", len(args), cmd.UseLine())
			}
			return nil
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := prepare(args[0], f, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			shutdowns := shutdown.NewManager(s.log)
			shutdowns.Register("logger", s.log)
			defer shutdowns.Shutdown()

			return app.NewApplication(s.cfg, s.annotator, s.log).Run(cmd.Context())
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stdout)

	cmd.Flags().StringVar(&f.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error, off")
	cmd.Flags().BoolVar(&f.noReorder, "no-reorder", false, "keep three-point annotations in click order")

	return cmd
}

// prepare validates the directory, loads settings and discovers images.
func prepare(dir string, f flags, out io.Writer) (*session, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("directory %s does not exist", dir)
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.noReorder {
		cfg.ReorderFaceLandmarks = false
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(logger.Options{
		Level:      level,
		JSON:       cfg.Log.JSON,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	decoder := imaging.Chain{imaging.StdDecoder{}}
	if cfg.Discovery.OpenCVFallback {
		decoder = append(decoder, cvdecode.New())
	}

	paths, err := discovery.Find(dir, decoder, discovery.Options{
		ExcludeSuffixes: cfg.Discovery.ExcludeSuffixes,
		Logger:          log,
	})
	if err != nil {
		log.Shutdown()
		return nil, err
	}

	points := store.NewPointStore(log)
	entries := discovery.Entries(dir, paths, points)

	a, err := annotator.New(entries, decoder, points, annotator.Options{
		ReorderFaceLandmarks: cfg.ReorderFaceLandmarks,
		CrossFraction:        cfg.Crosshair.SizeFraction,
	}, log)
	if errors.Is(err, annotator.ErrNoImages) {
		log.Shutdown()
		return nil, fmt.Errorf("no images found in %s", dir)
	}
	if err != nil {
		log.Shutdown()
		return nil, err
	}

	fmt.Fprint(out, instructions)

	return &session{cfg: cfg, log: log, annotator: a}, nil
}
