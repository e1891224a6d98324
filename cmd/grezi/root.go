package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/config"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/director"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/engine"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/observability"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/resolver"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/slideshow"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/source"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/text"
)

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)

	root := &cobra.Command{
		Use:           "grezi",
		Short:         "Resolve and sample slide decks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./grezi.yaml)")
	flags.Int("width", 0, "output width in pixels")
	flags.Int("height", 0, "output height in pixels")
	flags.Int("fps", 0, "samples per second")
	flags.Int("workers", 0, "slides sampled in parallel")
	flags.Bool("export", false, "draw highlights in their settled form")
	flags.String("log-level", "", "log level")
	for key, name := range map[string]string{
		"render.width":   "width",
		"render.height":  "height",
		"render.fps":     "fps",
		"render.workers": "workers",
		"render.export":  "export",
		"logger.level":   "log-level",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(newResolveCmd(a), newSampleCmd(a), newFrameCmd(a))
	return root
}

func (a *app) initialize() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName("grezi")
		a.v.SetConfigType("yaml")
	}
	a.v.SetEnvPrefix(config.EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg, err := config.NewConfigFromViper(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	observability.InitializeLogger(cfg.Logger)
	a.log = observability.GetLogger()
	return nil
}

func (a *app) window() geom.Rect {
	return geom.XYWH(0, 0, float64(a.cfg.Render.Width), float64(a.cfg.Render.Height))
}

// load reads the deck at path, or the newest deck when path is a directory.
func (a *app) load(path string) (*slideshow.Slideshow, string, error) {
	deckPath, err := director.ResolveDeckPath(path)
	if err != nil {
		return nil, "", err
	}
	show, err := director.Load(deckPath, a.log.Named("director"))
	if err != nil {
		return nil, "", fmt.Errorf("failed to load %s: %w", deckPath, err)
	}
	a.log.Info("Deck loaded",
		zap.String("path", deckPath),
		zap.Int("slides", len(show.Slides)),
		zap.Int("objects", len(show.Objects)))
	return show, deckPath, nil
}

func (a *app) newPresenter(show *slideshow.Slideshow) (*engine.Presenter, *resolver.Resolver, error) {
	shaper, err := text.NewShaper()
	if err != nil {
		return nil, nil, err
	}
	media := source.NewCache(a.log, geom.V2(a.cfg.Media.PlaceholderWidth, a.cfg.Media.PlaceholderHeight))
	r := resolver.New(shaper, media, resolver.Defaults{
		FontSize:   a.cfg.Text.DefaultFontSize,
		LineHeight: a.cfg.Text.LineHeight,
	}, a.log)
	p := engine.NewPresenter(show, r, media, engine.Options{
		Workers: a.cfg.Render.Workers,
		Export:  a.cfg.Render.Export,
	}, a.log)
	return p, r, nil
}

func deckArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
