package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aretw0/nfa/internal/dto"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrReservedStateName is returned when a document names a state "-".
// In text form "-" always means "no transition", so it cannot also be a state.
var ErrReservedStateName = errors.New(`"-" is reserved for undefined transitions and cannot name a state`)

// ParseList splits the comma-separated console notation ("q0, q1") into items.
// All whitespace is removed and empty items are dropped.
func ParseList(s string) []string {
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads a definition document (YAML by default, JSON for .json files).
func Load(path string) (*dto.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read automaton definition: %w", err)
	}
	return Parse(data, strings.ToLower(filepath.Ext(path)) == ".json")
}

// Parse decodes a definition document held in memory.
func Parse(data []byte, isJSON bool) (*dto.Definition, error) {
	raw := map[string]any{}
	if isJSON {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse automaton json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse automaton yaml: %w", err)
		}
	}

	var def dto.Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(commaListHook),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &def,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid automaton document: %w", err)
	}

	if err := checkReserved(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadDefinition reads a document and returns the five-tuple it describes.
// The result is not validated; pass it to domain.NewAutomaton.
func LoadDefinition(path string) (*domain.Definition, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	def := doc.ToDomain()
	return &def, nil
}

var stringSlice = reflect.TypeOf([]string{})

// commaListHook lets list fields be written as "q0, q1" like the console input.
func commaListHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != stringSlice {
		return data, nil
	}
	return ParseList(reflect.ValueOf(data).String()), nil
}

// checkReserved only looks at Q. An initial or final "-" is not in Q and is
// reported by domain.NewAutomaton like any other missing state.
func checkReserved(def *dto.Definition) error {
	for _, n := range def.States {
		if n == domain.UndefinedToken {
			return ErrReservedStateName
		}
	}
	return nil
}
