package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Random: RandomConfig{
			Source: SourceCrypto,
		},
		Combat: CombatConfig{
			MaxTurns: 100,
		},
		Content: ContentConfig{
			FightersDir: "content/fighters",
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
random:
  source: seeded
  seed: 42
  log_draws: true
combat:
  zero_damage_report: true
  max_turns: 12
content:
  fighters_dir: fixtures/fighters
  scripts_dir: fixtures/scripts
  instruction_limit: 5000
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, SourceSeeded, cfg.Random.Source)
	assert.Equal(t, uint64(42), cfg.Random.Seed)
	assert.True(t, cfg.Random.LogDraws)
	assert.True(t, cfg.Combat.ZeroDamageReport)
	assert.Equal(t, 12, cfg.Combat.MaxTurns)
	assert.Equal(t, "fixtures/scripts", cfg.Content.ScriptsDir)
	assert.Equal(t, 5000, cfg.Content.InstructionLimit)
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, SourceCrypto, cfg.Random.Source)
	assert.Equal(t, 100, cfg.Combat.MaxTurns)
	assert.False(t, cfg.Combat.ZeroDamageReport)
	assert.Equal(t, "content/fighters", cfg.Content.FightersDir)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("combat:\n  max_turns: 10\n"), 0644))
	t.Setenv("DUEL_COMBAT_MAX_TURNS", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Combat.MaxTurns)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadFromViper_Defaults(t *testing.T) {
	cfg, err := LoadFromViper(Defaults())
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateRandomSource(t *testing.T) {
	for _, src := range []string{SourceCrypto, SourceSeeded} {
		cfg := validConfig()
		cfg.Random.Source = src
		assert.NoError(t, cfg.Validate(), "source %q should be valid", src)
	}
	cfg := validConfig()
	cfg.Random.Source = "dice"
	assert.Error(t, cfg.Validate())
}

func TestValidateContentFightersDirEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Content.FightersDir = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	cfg.Combat.MaxTurns = 0
	cfg.Content.InstructionLimit = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "combat.max_turns")
	assert.Contains(t, err.Error(), "content.instruction_limit")
}

// Property-based tests

func TestPropertyMaxTurnsPositiveAccepted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		turns := rapid.IntRange(1, 100000).Draw(t, "max_turns")
		cfg := validConfig()
		cfg.Combat.MaxTurns = turns
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid max_turns %d rejected: %v", turns, err)
		}
	})
}

func TestPropertyMaxTurnsNonPositiveRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		turns := rapid.IntRange(-1000, 0).Draw(t, "max_turns")
		cfg := validConfig()
		cfg.Combat.MaxTurns = turns
		if err := cfg.Validate(); err == nil {
			t.Fatalf("invalid max_turns %d accepted", turns)
		}
	})
}
