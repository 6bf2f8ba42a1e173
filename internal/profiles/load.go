// Package profiles reads swipe decks from disk and writes the decisions made
// on them.
package profiles

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/olivier-w/swipe/internal/deck"
)

// ErrEmptyDeck is returned when a deck file holds no usable profiles.
var ErrEmptyDeck = errors.New("deck contains no profiles")

type deckFile struct {
	Profiles []deck.Profile `yaml:"profiles" json:"profiles"`
}

// Load parses a deck file. YAML and JSON files hold either a bare list of
// profiles or a {profiles: [...]} document; text files hold one
// "Name[, Age][, Bio]" per line. Profiles without a name are skipped and
// counted; profiles without an id get a random one.
func Load(path string) ([]deck.Profile, int, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsDeckExt(ext) {
		return nil, 0, fmt.Errorf("unsupported deck format %s (supported: %s)", ext, SupportedExtsList())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading deck: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, 0, fmt.Errorf("%s: deck is not valid UTF-8", filepath.Base(path))
	}
	data = bytes.TrimPrefix(data, []byte("\uFEFF"))

	var raw []deck.Profile
	switch ext {
	case ".txt":
		raw, err = parseText(data)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
	case ".json":
		raw, err = parseJSON(data)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
	default:
		raw, err = parseStructured(data)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
	}

	out, skipped := normalize(raw)
	if len(out) == 0 {
		return nil, skipped, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptyDeck)
	}
	return out, skipped, nil
}

func parseStructured(data []byte) ([]deck.Profile, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, ErrEmptyDeck
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	switch root.Content[0].Kind {
	case yaml.SequenceNode:
		var list []deck.Profile
		if err := dec.Decode(&list); err != nil {
			return nil, fmt.Errorf("decode deck: %w", err)
		}
		return list, yamlTrailing(dec)
	case yaml.MappingNode:
		var doc deckFile
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode deck: %w", err)
		}
		return doc.Profiles, yamlTrailing(dec)
	default:
		return nil, fmt.Errorf("decode deck: expected a list or a profiles mapping")
	}
}

func yamlTrailing(dec *yaml.Decoder) error {
	var trailing yaml.Node
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return errors.New("decode deck: unexpected trailing document")
	}
	return nil
}

// parseJSON uses encoding/json rather than the YAML decoder: tab-indented
// JSON is not valid YAML.
func parseJSON(data []byte) ([]deck.Profile, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyDeck
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	if trimmed[0] == '[' {
		var list []deck.Profile
		if err := dec.Decode(&list); err != nil {
			return nil, fmt.Errorf("decode deck: %w", err)
		}
		return list, jsonTrailing(dec)
	}
	var doc deckFile
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}
	return doc.Profiles, jsonTrailing(dec)
}

func jsonTrailing(dec *json.Decoder) error {
	var trailing json.RawMessage
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return errors.New("decode deck: unexpected data after the deck")
	}
	return nil
}

func parseText(data []byte) ([]deck.Profile, error) {
	var out []deck.Profile
	scanner := bufio.NewScanner(bytes.NewReader(data))
	// no line is longer than the file itself
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), max(len(data)+1, bufio.MaxScanTokenSize))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.SplitN(line, ",", 3)
		p := deck.Profile{Name: strings.TrimSpace(fields[0])}
		rest := fields[1:]
		if len(rest) > 0 {
			if age, err := strconv.Atoi(strings.TrimSpace(rest[0])); err == nil {
				p.Age = age
				rest = rest[1:]
			}
		}
		if len(rest) > 0 {
			p.Bio = strings.TrimSpace(strings.Join(rest, ","))
		}
		out = append(out, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	return out, nil
}

func normalize(in []deck.Profile) ([]deck.Profile, int) {
	out := make([]deck.Profile, 0, len(in))
	seen := make(map[string]bool, len(in))
	skipped := 0
	for _, p := range in {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			skipped++
			continue
		}
		if p.Age < 0 {
			p.Age = 0
		}
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" || seen[p.ID] {
			p.ID = uuid.NewString()
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out, skipped
}
