// Package prompts renders the instructions sent to the generative model.
// Templates live in careers.json, embedded at compile time.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

//go:embed careers.json
var careersJSON []byte

// placeholderRE matches {{.Name}} placeholders.
var placeholderRE = regexp.MustCompile(`\{\{\.([A-Za-z][A-Za-z0-9]*)\}\}`)

// Catalog maps a prompt key to its template.
type Catalog map[string]string

// requiredKeys are the templates the builders render.
var requiredKeys = []string{keyFollowUp, keyRecommendations, keyOptions, keyRoadmap}

var loadCatalog = sync.OnceValues(func() (Catalog, error) {
	return parseCatalog(careersJSON)
})

// Load returns the embedded catalogue, parsed on first use.
func Load() (Catalog, error) {
	return loadCatalog()
}

func parseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse prompt catalogue: %w", err)
	}
	for _, key := range requiredKeys {
		if strings.TrimSpace(c[key]) == "" {
			return nil, fmt.Errorf("prompt catalogue is missing %q", key)
		}
	}
	return c, nil
}

// Template returns the template stored under key.
func (c Catalog) Template(key string) (string, error) {
	tmpl, ok := c[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return tmpl, nil
}

// Keys lists the catalogue keys in sorted order.
func (c Catalog) Keys() []string {
	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Placeholders lists the distinct placeholder names in tmpl, sorted.
func Placeholders(tmpl string) []string {
	seen := map[string]bool{}
	var names []string
	for _, m := range placeholderRE.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return names
}

// Format substitutes {{.Key}} placeholders with values from data in a single
// pass. Placeholders inside substituted values are not expanded, and
// placeholders without a value are left in place.
func Format(tmpl string, data map[string]string) string {
	return placeholderRE.ReplaceAllStringFunc(tmpl, func(ph string) string {
		name := placeholderRE.FindStringSubmatch(ph)[1]
		if v, ok := data[name]; ok {
			return v
		}
		return ph
	})
}

// render formats the template under key. The catalogue is embedded, so a
// missing key is a build defect and panics.
func render(key string, data map[string]string) string {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	tmpl, err := c.Template(key)
	if err != nil {
		panic(err)
	}
	return Format(tmpl, data)
}
