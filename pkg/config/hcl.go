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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclConfig struct {
		NormalizeSpaces *bool  `hcl:"normalize_spaces,optional"`
		SampleSize      int    `hcl:"sample_size,optional"`
		ContextChars    int    `hcl:"context_chars,optional"`
		UnwantedPattern string `hcl:"unwanted_pattern,optional"`
		HistoryPath     string `hcl:"history_path,optional"`
		Rules           []struct {
			Find    string `hcl:"find"`
			Replace string `hcl:"replace,optional"`
			Note    string `hcl:"note,optional"`
		} `hcl:"rule,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		NormalizeSpaces: hclCfg.NormalizeSpaces == nil || *hclCfg.NormalizeSpaces,
		SampleSize:      hclCfg.SampleSize,
		ContextChars:    hclCfg.ContextChars,
		UnwantedPattern: hclCfg.UnwantedPattern,
		HistoryPath:     hclCfg.HistoryPath,
	}
	for _, rule := range hclCfg.Rules {
		cfg.Rules = append(cfg.Rules, ReplaceRule{
			Find:    rule.Find,
			Replace: rule.Replace,
			Note:    rule.Note,
		})
	}

	return cfg, nil
}
