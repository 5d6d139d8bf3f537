package config

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/headerguard/headerguard/pkg/errors"
)

// RenderStarter returns the starter config, with the properties table
// customized when owner or year are non-empty. The commented template is
// returned verbatim when no customization is asked for.
func RenderStarter(owner, year string) ([]byte, error) {
	if owner == "" && year == "" {
		return starterConfig, nil
	}

	var doc map[string]interface{}
	if err := toml.Unmarshal(starterConfig, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "embedded starter config is malformed")
	}

	props, _ := doc["properties"].(map[string]interface{})
	if props == nil {
		props = make(map[string]interface{})
	}
	if owner != "" {
		props["copyrightOwner"] = owner
	}
	if year != "" {
		props["inceptionYear"] = year
	}
	doc["properties"] = props

	out, err := toml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot render starter config")
	}
	return out, nil
}
