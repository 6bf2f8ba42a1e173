package profiles

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/olivier-w/swipe/internal/deck"
)

type decisionFile struct {
	Accepted  int             `yaml:"accepted"`
	Rejected  int             `yaml:"rejected"`
	Decisions []deck.Decision `yaml:"decisions"`
}

// WriteDecisions saves the swipe history as YAML at path.
func WriteDecisions(path string, history []deck.Decision) error {
	doc := decisionFile{Decisions: history}
	for _, d := range history {
		if d.Direction == deck.Accept {
			doc.Accepted++
		} else {
			doc.Rejected++
		}
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding decisions: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing decisions: %w", err)
	}
	return nil
}
