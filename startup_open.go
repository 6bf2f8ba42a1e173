package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/olivier-w/swipe/internal/config"
	"github.com/olivier-w/swipe/internal/deck"
	"github.com/olivier-w/swipe/internal/profiles"
	"github.com/olivier-w/swipe/internal/ui"
)

func buildDeckModel(path string, cfg config.Config, log *zap.Logger) (ui.Model, error) {
	if log == nil {
		log = zap.NewNop()
	}
	info, err := os.Stat(path)
	if err != nil {
		return ui.Model{}, err
	}
	if info.IsDir() {
		return ui.Model{}, fmt.Errorf("%s is a directory", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !profiles.IsDeckExt(ext) {
		return ui.Model{}, fmt.Errorf("unsupported format %s (supported: %s)", ext, profiles.SupportedExtsList())
	}

	list, skipped, err := profiles.Load(path)
	if err != nil {
		return ui.Model{}, err
	}
	if skipped > 0 {
		log.Warn("skipped profiles without a name",
			zap.String("deck", path),
			zap.Int("skipped", skipped))
	}
	log.Info("deck loaded",
		zap.String("deck", path),
		zap.Int("profiles", len(list)))

	return ui.New(deck.New(list), cfg, clockwork.NewRealClock(), log, deckName(path)), nil
}

func deckName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
