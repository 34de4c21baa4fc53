package ask

import (
	_ "embed"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// DefaultProfile is served at the bare ask route.
const DefaultProfile = "general"

const defaultMaxTokens = 1024

//go:embed profiles.yaml
var defaultProfilesYAML []byte

// Profile is a route variant: which sources feed the prompt and how the
// model is sampled.
type Profile struct {
	Name        string   `yaml:"-"`
	Sources     []string `yaml:"sources"`
	Temperature float64  `yaml:"temperature"`
	MaxTokens   int64    `yaml:"max_tokens"`
}

// Profiles indexes profiles by name.
type Profiles map[string]Profile

// Names returns profile names sorted alphabetically.
func (p Profiles) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveSources returns the profile's source descriptors in profile order.
func (p Profile) ResolveSources() ([]Source, error) {
	out := make([]Source, 0, len(p.Sources))
	for _, name := range p.Sources {
		src, ok := LookupSource(name)
		if !ok {
			return nil, eris.Errorf("ask: profile %s: unknown source %q", p.Name, name)
		}
		if err := src.Validate(); err != nil {
			return nil, eris.Wrapf(err, "ask: profile %s", p.Name)
		}
		out = append(out, src)
	}
	return out, nil
}

// LoadProfiles reads profiles from a YAML file. An empty path loads the
// embedded defaults.
func LoadProfiles(path string) (Profiles, error) {
	data := defaultProfilesYAML
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "ask: read profiles %s", path)
		}
	}
	return ParseProfiles(data)
}

// ParseProfiles decodes and validates a profiles document.
func ParseProfiles(data []byte) (Profiles, error) {
	var doc struct {
		Profiles map[string]Profile `yaml:"profiles"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "ask: parse profiles")
	}
	if len(doc.Profiles) == 0 {
		return nil, eris.New("ask: no profiles defined")
	}

	out := make(Profiles, len(doc.Profiles))
	for name, p := range doc.Profiles {
		p.Name = name
		if len(p.Sources) == 0 {
			return nil, eris.Errorf("ask: profile %s: no sources", name)
		}
		if p.MaxTokens <= 0 {
			p.MaxTokens = defaultMaxTokens
		}
		if p.Temperature < 0 || p.Temperature > 1 {
			return nil, eris.Errorf("ask: profile %s: temperature %.2f out of range", name, p.Temperature)
		}
		if _, err := p.ResolveSources(); err != nil {
			return nil, err
		}
		out[name] = p
	}
	if _, ok := out[DefaultProfile]; !ok {
		return nil, eris.Errorf("ask: profile %q is required", DefaultProfile)
	}
	return out, nil
}
