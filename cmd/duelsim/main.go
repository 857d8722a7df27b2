// Package main provides the duel simulator binary: it loads fighter
// definitions, runs a single duel between two of them, and logs the outcome.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/duel/internal/config"
	"github.com/cory-johannsen/duel/internal/game/duel"
	"github.com/cory-johannsen/duel/internal/game/fighter"
	"github.com/cory-johannsen/duel/internal/game/random"
	"github.com/cory-johannsen/duel/internal/game/variant"
	"github.com/cory-johannsen/duel/internal/observability"
	"github.com/cory-johannsen/duel/internal/scripting"
)

const scriptPrefix = "lua:"

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	aID := flag.String("a", "knight", "first fighter: template id, or lua:<script> for a scripted variant")
	bID := flag.String("b", "rogue", "second fighter: template id, or lua:<script> for a scripted variant")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	templates, err := variant.LoadTemplates(cfg.Content.FightersDir)
	if err != nil {
		logger.Fatal("loading fighter templates", zap.Error(err))
	}
	registry, err := variant.NewRegistry(templates)
	if err != nil {
		logger.Fatal("indexing fighter templates", zap.Error(err))
	}
	logger.Info("loaded fighter templates", zap.Strings("ids", registry.IDs()))

	scripts := map[string]*scripting.ScriptedVariant{}
	if cfg.Content.ScriptsDir != "" {
		scripts, err = scripting.LoadVariants(cfg.Content.ScriptsDir, cfg.Content.InstructionLimit, logger)
		if err != nil {
			logger.Fatal("loading fighter scripts", zap.Error(err))
		}
		defer func() {
			for _, s := range scripts {
				s.Close()
			}
		}()
		logger.Info("loaded fighter scripts", zap.Int("count", len(scripts)))
	}

	spawner := &spawner{cfg: cfg, logger: logger, registry: registry, scripts: scripts}
	a, err := spawner.spawn(*aID, 0)
	if err != nil {
		logger.Fatal("spawning fighter a", zap.String("id", *aID), zap.Error(err))
	}
	b, err := spawner.spawn(*bID, 1)
	if err != nil {
		logger.Fatal("spawning fighter b", zap.String("id", *bID), zap.Error(err))
	}

	res := duel.Run(a, b, cfg.Combat.MaxTurns, logger)
	logger.Info("simulation complete",
		zap.String("duel_id", res.ID.String()),
		zap.String("winner", res.Winner),
		zap.Int("turns", res.Turns),
		zap.Int("experience", res.Experience),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// spawner builds fighters from templates or scripts, each with its own
// random source.
type spawner struct {
	cfg      config.Config
	logger   *zap.Logger
	registry *variant.Registry
	scripts  map[string]*scripting.ScriptedVariant
}

func (s *spawner) spawn(id string, slot uint64) (*fighter.Fighter, error) {
	rc := s.cfg.Random
	rc.Seed += slot
	src, err := random.FromConfig(rc, s.logger)
	if err != nil {
		return nil, err
	}

	opts := []fighter.Option{
		fighter.WithRandomSource(src),
		fighter.WithLogger(s.logger),
	}
	if s.cfg.Combat.ZeroDamageReport {
		opts = append(opts, fighter.WithZeroDamageReport())
	}

	if name, ok := strings.CutPrefix(id, scriptPrefix); ok {
		v, found := s.scripts[name]
		if !found {
			return nil, fmt.Errorf("unknown fighter script %q", name)
		}
		return v.Spawn(opts...)
	}

	tmpl, ok := s.registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("unknown fighter template %q", id)
	}
	return tmpl.Spawn(opts...), nil
}
