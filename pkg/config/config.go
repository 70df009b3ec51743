// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Defaults applied when the config file leaves a field unset.
const (
	DefaultSampleSize      = 10
	DefaultContextChars    = 25
	DefaultHistoryPath     = ".textclean.json"
	DefaultUnwantedPattern = `[^A-Za-z0-9 \.,]`
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 ReplaceRule is one configured find/replace operation
type ReplaceRule struct {
	Find    string // Pattern to find
	Replace string // Replacement, using $1 capture syntax
	Note    string // Optional free-text note recorded in history
}

// 📚 Config represents the complete configuration
type Config struct {
	// NormalizeSpaces collapses space runs after each replace. Defaults on.
	NormalizeSpaces bool

	// SampleSize bounds preview samples.
	SampleSize int

	// ContextChars is the preview context window size per side.
	ContextChars int

	// UnwantedPattern matches characters the dataset should not contain.
	UnwantedPattern string

	// HistoryPath is where the operation history is persisted.
	HistoryPath string

	// Rules is an optional batch of replace operations to apply together.
	Rules []ReplaceRule
}

// 🏭 Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		NormalizeSpaces: true,
		SampleSize:      DefaultSampleSize,
		ContextChars:    DefaultContextChars,
		UnwantedPattern: DefaultUnwantedPattern,
		HistoryPath:     DefaultHistoryPath,
	}
}

// 🎯 Load loads the configuration from a file. A missing file yields the
// defaults.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Debug().Msg("no config file, using defaults")
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// applyDefaults fills unset fields. Regex validity of patterns and rules is
// deliberately NOT checked here; it is deferred to application time.
func (c *Config) applyDefaults() {
	if c.SampleSize == 0 {
		c.SampleSize = DefaultSampleSize
	}
	if c.ContextChars == 0 {
		c.ContextChars = DefaultContextChars
	}
	if c.HistoryPath == "" {
		c.HistoryPath = DefaultHistoryPath
	}
	if c.UnwantedPattern == "" {
		c.UnwantedPattern = DefaultUnwantedPattern
	}
}

// ✅ Validate checks structural validity
func (c *Config) Validate() error {
	if c.SampleSize < 0 {
		return errors.Errorf("sample_size must not be negative, got %d", c.SampleSize)
	}
	if c.ContextChars < 0 {
		return errors.Errorf("context_chars must not be negative, got %d", c.ContextChars)
	}
	for i, rule := range c.Rules {
		if rule.Find == "" {
			return errors.Errorf("rule %d: find is required", i)
		}
	}
	return nil
}
