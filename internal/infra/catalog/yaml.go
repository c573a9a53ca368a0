package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"telegram-movie-bot/internal/domain/model"
)

type yamlFile struct {
	Movies []movieDoc `yaml:"movies"`
}

// LoadYAML reads a catalog file of the form:
//
//	movies:
//	  - title: Kalki 2898 AD
//	    genre: [Action, Sci-Fi]
//	    ...
func LoadYAML(path string) ([]*model.Movie, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parseYAML(b)
}

func parseYAML(b []byte) ([]*model.Movie, error) {
	var f yamlFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return toModels(f.Movies), nil
}
