package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/director"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/engine"
)

func newResolveCmd(a *app) *cobra.Command {
	var (
		slide  int
		output string
	)
	cmd := &cobra.Command{
		Use:   "resolve [deck]",
		Short: "Dump the resolved geometry of every slide",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			show, _, err := a.load(deckArg(args))
			if err != nil {
				return err
			}
			_, r, err := a.newPresenter(show)
			if err != nil {
				return err
			}

			if slide >= len(show.Slides) {
				return fmt.Errorf("slide %d out of range, deck has %d", slide, len(show.Slides))
			}

			var dumps []director.SlideDump
			for i, s := range show.Slides {
				if slide >= 0 && i != slide {
					continue
				}
				res, err := r.Resolve(show, s, a.window())
				if err != nil {
					return fmt.Errorf("slide %d: %w", i, err)
				}
				dumps = append(dumps, director.SlideDump{Slide: i, Resolved: res})
			}

			path, err := outputPath(output, "resolved")
			if err != nil {
				return err
			}
			if err := director.WriteResolved(dumps, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+] Resolved %d slide(s): %s\n", len(dumps), path)
			return nil
		},
	}
	cmd.Flags().IntVar(&slide, "slide", -1, "only this slide (default all)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "dump path (default output/resolved_<time>.yaml)")
	return cmd
}

func newSampleCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "sample [deck]",
		Short: "Sample every slide at the configured frame rate",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			show, _, err := a.load(deckArg(args))
			if err != nil {
				return err
			}
			p, _, err := a.newPresenter(show)
			if err != nil {
				return err
			}

			samples, err := p.Export(cmd.Context(), a.window(), float64(a.cfg.Render.FPS))
			if err != nil {
				return err
			}

			path, err := outputPath(output, "samples")
			if err != nil {
				return err
			}
			if err := director.WriteSamples(samples, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+] Sampled %d slide(s) at %d FPS: %s\n", len(samples), a.cfg.Render.FPS, path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "dump path (default output/samples_<time>.yaml)")
	return cmd
}

func newFrameCmd(a *app) *cobra.Command {
	var (
		slide   int
		at      float64
		speaker bool
	)
	cmd := &cobra.Command{
		Use:   "frame [deck]",
		Short: "Print a single frame as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			show, _, err := a.load(deckArg(args))
			if err != nil {
				return err
			}
			p, _, err := a.newPresenter(show)
			if err != nil {
				return err
			}

			view := engine.ViewMain
			if speaker {
				view = engine.ViewSpeaker
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(p.Frame(view, slide, a.window(), at)); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().IntVar(&slide, "slide", 0, "slide index")
	cmd.Flags().Float64VarP(&at, "time", "t", 0, "seconds since the slide became current")
	cmd.Flags().BoolVar(&speaker, "speaker", false, "resolve for the speaker view")
	return cmd
}

func outputPath(explicit, kind string) (string, error) {
	path := explicit
	if path == "" {
		path = director.GenerateDumpPath("output", kind)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	return path, nil
}
