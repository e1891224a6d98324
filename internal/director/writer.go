package director

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/resolver"
	"github.com/StratusFearMe21/grezi-next-sub000/internal/timeline"
)

// WriteDeck writes a deck to a YAML file
func WriteDeck(deck *Deck, path string) error {
	return writeYAML(deck, path)
}

// ReadDeck reads a deck from a YAML file
func ReadDeck(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var deck Deck
	if err := yaml.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &deck, nil
}

// SlideDump is the resolved geometry of one slide.
type SlideDump struct {
	Slide    int                `yaml:"slide"`
	Resolved *resolver.Resolved `yaml:"resolved"`
}

// WriteResolved dumps resolved slides for inspection.
func WriteResolved(slides []SlideDump, path string) error {
	return writeYAML(slides, path)
}

// Samples is a slide sampled at a fixed frame rate.
type Samples struct {
	Slide  int              `yaml:"slide"`
	FPS    float64          `yaml:"fps"`
	Frames []timeline.Frame `yaml:"frames"`
}

// WriteSamples dumps sampled frames for inspection.
func WriteSamples(samples []Samples, path string) error {
	return writeYAML(samples, path)
}

func writeYAML(v interface{}, path string) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
