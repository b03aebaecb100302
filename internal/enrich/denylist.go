package enrich

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Denylist is the fixed set of URL patterns for which summarization is
// skipped outright: content known to resist plain-text extraction.
type Denylist struct {
	// Hosts are substring patterns matched against the whole URL,
	// e.g. "youtube.com".
	Hosts []string `yaml:"hosts"`

	// Suffixes are case-insensitive path suffixes, e.g. ".pdf".
	Suffixes []string `yaml:"suffixes"`
}

// DefaultDenylist covers the known non-extractable link types: video
// platforms and PDF documents.
func DefaultDenylist() Denylist {
	return Denylist{
		Hosts:    []string{"youtube.com", "youtu.be", "vimeo.com"},
		Suffixes: []string{".pdf"},
	}
}

// LoadDenylist reads denylist rules from a YAML file. An operator can
// point the service at a custom file to extend or replace the default
// rules.
func LoadDenylist(path string) (Denylist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Denylist{}, fmt.Errorf("failed to read denylist file: %w", err)
	}

	var d Denylist
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Denylist{}, fmt.Errorf("failed to parse denylist file: %w", err)
	}

	if d.empty() {
		return Denylist{}, fmt.Errorf("denylist file %s defines no rules", path)
	}

	return d, nil
}

// Match reports whether rawURL falls under the denylist.
func (d Denylist) Match(rawURL string) bool {
	lower := strings.ToLower(rawURL)

	for _, host := range d.Hosts {
		if strings.Contains(lower, strings.ToLower(host)) {
			return true
		}
	}
	for _, suffix := range d.Suffixes {
		if strings.HasSuffix(lower, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

func (d Denylist) empty() bool {
	return len(d.Hosts) == 0 && len(d.Suffixes) == 0
}
