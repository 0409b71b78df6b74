package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// LoadConfig is a kong.ConfigurationLoader for YAML files. Top-level keys
// are flag names, in either dashed or snake_case form:
//
//	out: ~/Documents/sites
//	max-pages: 40
//	rate: 1
//	user_agent: my-crawler/1.0
//
// Values from the file are defaults; flags given on the command line win.
func LoadConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		raw, ok := values[flag.Name]
		if !ok {
			raw, ok = values[strings.ReplaceAll(flag.Name, "-", "_")]
		}
		if !ok || raw == nil {
			return nil, nil
		}
		switch raw.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("config key %q: expected a single value", flag.Name)
		}
		return fmt.Sprint(raw), nil
	}
	return f, nil
}
