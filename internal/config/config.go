// Package config loads the table configuration from an HCL file, falling
// back to defaults when the file is absent.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/deck"
	"github.com/TristanYIKo/Black-Jack-Learning-Simulation-V2/internal/game"
)

// Config represents the complete trainer configuration
type Config struct {
	Game GameSettings `hcl:"game,block"`
	UI   UISettings   `hcl:"ui,block"`
}

// GameSettings contains the table rules and shuffle seeding
type GameSettings struct {
	Decks          int   `hcl:"decks,optional"`
	Bankroll       int   `hcl:"bankroll,optional"`
	MinBet         int   `hcl:"min_bet,optional"`
	ReshuffleDepth int   `hcl:"reshuffle_depth,optional"`
	DealerDelayMS  int   `hcl:"dealer_delay_ms,optional"`
	Seed           int64 `hcl:"seed,optional"`
}

// UISettings contains presentation-side configuration
type UISettings struct {
	LogFile string `hcl:"log_file,optional"`
}

// Default returns the standard configuration
func Default() *Config {
	return &Config{
		Game: GameSettings{
			Decks:          deck.DefaultDecks,
			Bankroll:       1000,
			MinBet:         5,
			ReshuffleDepth: deck.MinDepth,
			DealerDelayMS:  1000,
		},
		UI: UISettings{
			LogFile: "blackjack.log",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; a present but invalid file is an error.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Game.Decks == 0 {
		c.Game.Decks = def.Game.Decks
	}
	if c.Game.Bankroll == 0 {
		c.Game.Bankroll = def.Game.Bankroll
	}
	if c.Game.MinBet == 0 {
		c.Game.MinBet = def.Game.MinBet
	}
	if c.Game.ReshuffleDepth == 0 {
		c.Game.ReshuffleDepth = def.Game.ReshuffleDepth
	}
	if c.Game.DealerDelayMS == 0 {
		c.Game.DealerDelayMS = def.Game.DealerDelayMS
	}
	if c.UI.LogFile == "" {
		c.UI.LogFile = def.UI.LogFile
	}
}

func (c *Config) validate() error {
	if c.Game.Decks < 1 || c.Game.Decks > 8 {
		return fmt.Errorf("decks must be 1-8, got %d", c.Game.Decks)
	}
	if c.Game.MinBet < 1 {
		return fmt.Errorf("min_bet must be positive, got %d", c.Game.MinBet)
	}
	if c.Game.Bankroll < c.Game.MinBet {
		return fmt.Errorf("bankroll %d cannot cover the minimum bet %d", c.Game.Bankroll, c.Game.MinBet)
	}
	if c.Game.ReshuffleDepth < 4 {
		// A deal needs four cards before any hit
		return fmt.Errorf("reshuffle_depth must be at least 4, got %d", c.Game.ReshuffleDepth)
	}
	return nil
}

// Rules converts the game settings into engine rules
func (c *Config) Rules() game.Rules {
	return game.Rules{
		Decks:          c.Game.Decks,
		Bankroll:       c.Game.Bankroll,
		MinBet:         c.Game.MinBet,
		ReshuffleDepth: c.Game.ReshuffleDepth,
	}
}

// DealerDelay returns the dealer step pacing as a duration
func (c *Config) DealerDelay() time.Duration {
	return time.Duration(c.Game.DealerDelayMS) * time.Millisecond
}
