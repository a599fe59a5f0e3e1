// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

// Package manifest loads command declarations from YAML, TOML or JSON-with-comments
// documents. Handlers are looked up by name in a Registry; everything else (paths,
// aliases, parameters, overrides and inheritance) comes from the document.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/napalu/dispatch/errs"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format is a manifest encoding
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
	FormatJSONC
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatJSONC:
		return "jsonc"
	}
	return "yaml"
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json", ".jsonc":
		return FormatJSONC, nil
	}
	return 0, errs.ErrManifestFormat.WithArgs(filepath.Ext(path))
}

// Document is a decoded manifest
type Document struct {
	Program     string      `yaml:"program" toml:"program" json:"program"`
	Description string      `yaml:"description" toml:"description" json:"description"`
	Version     string      `yaml:"version" toml:"version" json:"version"`
	Quiet       *Quiet      `yaml:"quiet" toml:"quiet" json:"quiet"`
	Globals     []Parameter `yaml:"globals" toml:"globals" json:"globals"`
	Commands    []Command   `yaml:"commands" toml:"commands" json:"commands"`
}

// Quiet configures the built-in quiet option
type Quiet struct {
	Names   []string `yaml:"names" toml:"names" json:"names"`
	Default string   `yaml:"default" toml:"default" json:"default"`
	Env     string   `yaml:"env" toml:"env" json:"env"`
	Disable bool     `yaml:"disable" toml:"disable" json:"disable"`
}

// Command declares one command
type Command struct {
	ID          string      `yaml:"id" toml:"id" json:"id"`
	Path        string      `yaml:"path" toml:"path" json:"path"`
	Default     bool        `yaml:"default" toml:"default" json:"default"`
	Handler     string      `yaml:"handler" toml:"handler" json:"handler"`
	Description string      `yaml:"description" toml:"description" json:"description"`
	Version     string      `yaml:"version" toml:"version" json:"version"`
	Hidden      bool        `yaml:"hidden" toml:"hidden" json:"hidden"`
	Aliases     []string    `yaml:"aliases" toml:"aliases" json:"aliases"`
	AliasSeed   string      `yaml:"alias_seed" toml:"alias_seed" json:"alias_seed"`
	Inherits    []string    `yaml:"inherits" toml:"inherits" json:"inherits"`
	Omit        []string    `yaml:"omit" toml:"omit" json:"omit"`
	Params      []Param     `yaml:"params" toml:"params" json:"params"`
	Overrides   []Parameter `yaml:"overrides" toml:"overrides" json:"overrides"`
}

// Param is one entry of a handler's parameter table
type Param struct {
	Name     string   `yaml:"name" toml:"name" json:"name"`
	Type     string   `yaml:"type" toml:"type" json:"type"`
	Sequence bool     `yaml:"sequence" toml:"sequence" json:"sequence"`
	Default  any      `yaml:"default" toml:"default" json:"default"`
	Choices  []string `yaml:"choices" toml:"choices" json:"choices"`
	Help     string   `yaml:"help" toml:"help" json:"help"`
	CatchAll string   `yaml:"catch_all" toml:"catch_all" json:"catch_all"`
}

// Parameter is an override or a global parameter. Unset fields keep their inferred value.
type Parameter struct {
	Dest     string   `yaml:"dest" toml:"dest" json:"dest"`
	Names    []string `yaml:"names" toml:"names" json:"names"`
	Kind     string   `yaml:"kind" toml:"kind" json:"kind"`
	Arity    string   `yaml:"arity" toml:"arity" json:"arity"`
	Type     string   `yaml:"type" toml:"type" json:"type"`
	Default  any      `yaml:"default" toml:"default" json:"default"`
	Required *bool    `yaml:"required" toml:"required" json:"required"`
	Sequence *bool    `yaml:"sequence" toml:"sequence" json:"sequence"`
	Choices  []string `yaml:"choices" toml:"choices" json:"choices"`
	Help     string   `yaml:"help" toml:"help" json:"help"`
	Group    string   `yaml:"group" toml:"group" json:"group"`
	Env      string   `yaml:"env" toml:"env" json:"env"`
}

// Decode parses data in format. name is only used in error messages.
func Decode(data []byte, format Format, name string) (*Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.Decode(string(data), &doc)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown field %q", undecoded[0].String())
			}
		}
	case FormatJSONC:
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	default:
		return nil, errs.ErrManifestFormat.WithArgs(format.String())
	}
	if err != nil {
		return nil, errs.ErrManifestDecode.WithArgs(name).Wrap(err)
	}
	return &doc, nil
}

// Load reads and decodes the manifest at path
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(data, format, path)
}

// scalar renders a decoded default the way a command line would spell it, so that
// numbers decoded as float64 (JSON) or int64 (TOML) convert to any declared type
func scalar(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		out := make([]string, len(val))
		for i, item := range val {
			out[i] = fmt.Sprint(scalar(item))
		}
		return out
	}
	return fmt.Sprint(v)
}
