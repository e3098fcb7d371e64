package prompt

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Templates holds the prompt bodies sent to the generation gateway. They are
// plain text with {{name}} placeholders, loaded from a YAML file so prompt
// iteration does not require a rebuild.
type Templates struct {
	Concepts string `yaml:"concepts"`
	Roadmap  string `yaml:"roadmap"`
}

var placeholderRe = regexp.MustCompile(`\{\{([a-zA-Z0-9_]+)\}\}`)

func Load(path string) (*Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}
	var t Templates
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse prompts file: %w", err)
	}
	if strings.TrimSpace(t.Concepts) == "" {
		return nil, fmt.Errorf("prompts file %s: missing concepts template", path)
	}
	if strings.TrimSpace(t.Roadmap) == "" {
		return nil, fmt.Errorf("prompts file %s: missing roadmap template", path)
	}
	return &t, nil
}

// Render substitutes every {{name}} placeholder from vars. A placeholder with
// no matching var is an error, so a renamed template variable fails loudly
// instead of leaking "{{company_name}}" into a model prompt.
func Render(template string, vars map[string]string) (string, error) {
	out := template
	for name, value := range vars {
		out = strings.ReplaceAll(out, "{{"+name+"}}", value)
	}
	if m := placeholderRe.FindString(out); m != "" {
		return "", fmt.Errorf("prompt template has unbound placeholder %s", m)
	}
	return out, nil
}
