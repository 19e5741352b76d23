package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ericogr/giera/internal/game"
	"github.com/ericogr/giera/internal/world"
)

type rawConfig struct {
	Characters []string `json:"characters"`
	Server     *struct {
		Address string `json:"address"`
	} `json:"server"`
	Database *struct {
		Path string `json:"path"`
	} `json:"database"`
	Map *struct {
		Size         int `json:"size"`
		MonsterCount int `json:"monster_count"`
		AggroRadius  int `json:"aggro_radius"`
		Start        *struct {
			X int `json:"x"`
			Y int `json:"y"`
		} `json:"start"`
	} `json:"map"`
	Upgrade *struct {
		Cost int `json:"cost"`
	} `json:"upgrade"`
	Worker *struct {
		Workers   int `json:"workers"`
		QueueSize int `json:"queue_size"`
	} `json:"worker"`
	Session *struct {
		TTLSeconds int `json:"ttl_seconds"`
	} `json:"session"`
	Leaderboard *struct {
		DefaultLimit int `json:"default_limit"`
	} `json:"leaderboard"`
}

// LoadedConfig is the validated server configuration.
type LoadedConfig struct {
	Characters       []string
	ServerAddress    string
	DatabasePath     string
	Map              world.Settings
	UpgradeCost      int
	Workers          int
	QueueSize        int
	SessionTTL       time.Duration
	LeaderboardLimit int
}

// Default returns the configuration used when no file overrides a value.
func Default() *LoadedConfig {
	return &LoadedConfig{
		Characters:       append([]string(nil), game.DefaultCharacters...),
		ServerAddress:    ":8080",
		Map:              world.DefaultSettings(),
		UpgradeCost:      5,
		Workers:          2,
		QueueSize:        256,
		SessionTTL:       24 * time.Hour,
		LeaderboardLimit: 10,
	}
}

// LoadConfig reads the configuration file at path. Missing sections keep
// their defaults; present values are validated.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a JSON configuration document.
func Parse(b []byte) (*LoadedConfig, error) {
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	cfg := Default()

	if len(rc.Characters) > 0 {
		// Character names are matched case-insensitively, so they must be
		// unique regardless of case.
		seen := make(map[string]struct{}, len(rc.Characters))
		out := make([]string, 0, len(rc.Characters))
		for _, c := range rc.Characters {
			name := strings.TrimSpace(c)
			if name == "" {
				return nil, fmt.Errorf("characters: empty character name")
			}
			key := strings.ToLower(name)
			if _, dup := seen[key]; dup {
				return nil, fmt.Errorf("characters: duplicate character '%s'", name)
			}
			seen[key] = struct{}{}
			out = append(out, name)
		}
		cfg.Characters = out
	}
	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil && rc.Database.Path != "" {
		cfg.DatabasePath = rc.Database.Path
	}
	if m := rc.Map; m != nil {
		if m.Size != 0 {
			cfg.Map.Size = m.Size
		}
		if m.MonsterCount != 0 {
			cfg.Map.MonsterCount = m.MonsterCount
		}
		if m.AggroRadius != 0 {
			cfg.Map.AggroRadius = m.AggroRadius
		}
		if m.Start != nil {
			cfg.Map.Start = world.Position{X: m.Start.X, Y: m.Start.Y}
		} else {
			cfg.Map.Start = world.Position{X: cfg.Map.Size / 2, Y: cfg.Map.Size / 2}
		}
	}
	if rc.Upgrade != nil && rc.Upgrade.Cost != 0 {
		cfg.UpgradeCost = rc.Upgrade.Cost
	}
	if w := rc.Worker; w != nil {
		if w.Workers != 0 {
			cfg.Workers = w.Workers
		}
		if w.QueueSize != 0 {
			cfg.QueueSize = w.QueueSize
		}
	}
	if rc.Session != nil && rc.Session.TTLSeconds != 0 {
		cfg.SessionTTL = time.Duration(rc.Session.TTLSeconds) * time.Second
	}
	if rc.Leaderboard != nil && rc.Leaderboard.DefaultLimit != 0 {
		cfg.LeaderboardLimit = rc.Leaderboard.DefaultLimit
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *LoadedConfig) validate() error {
	m := c.Map
	if m.Size < 4 {
		return fmt.Errorf("map.size must be at least 4, got %d", m.Size)
	}
	if m.MonsterCount < 0 {
		return fmt.Errorf("map.monster_count must not be negative")
	}
	if m.AggroRadius < 0 {
		return fmt.Errorf("map.aggro_radius must not be negative")
	}
	if m.Start.X < 0 || m.Start.X >= m.Size || m.Start.Y < 0 || m.Start.Y >= m.Size {
		return fmt.Errorf("map.start (%d,%d) is outside a %dx%d map", m.Start.X, m.Start.Y, m.Size, m.Size)
	}
	if c.UpgradeCost <= 0 {
		return fmt.Errorf("upgrade.cost must be positive, got %d", c.UpgradeCost)
	}
	if c.Workers <= 0 || c.QueueSize <= 0 {
		return fmt.Errorf("worker.workers and worker.queue_size must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session.ttl_seconds must be positive")
	}
	if c.LeaderboardLimit <= 0 || c.LeaderboardLimit > 100 {
		return fmt.Errorf("leaderboard.default_limit must be within 1..100")
	}
	return nil
}
