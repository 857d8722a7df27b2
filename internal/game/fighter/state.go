package fighter

import (
	"fmt"
	"math"
)

// Attribute keys used by the map boundary.
const (
	KeyHealth   = "health"
	KeyStrength = "strength"
	KeyDefense  = "defense"
	KeyName     = "name"
	KeyLevel    = "level"
)

// State is the full transferable attribute set of a fighter. All five fields
// are loaded and exported together.
type State struct {
	Health   int    `yaml:"health" json:"health" mapstructure:"health"`
	Strength int    `yaml:"strength" json:"strength" mapstructure:"strength"`
	Defense  int    `yaml:"defense" json:"defense" mapstructure:"defense"`
	Name     string `yaml:"name" json:"name" mapstructure:"name"`
	Level    int    `yaml:"level" json:"level" mapstructure:"level"`
}

// Export returns a copy of the fighter's attributes.
func (f *Fighter) Export() State { return f.state }

// Load replaces all five attributes at once.
func (f *Fighter) Load(s State) {
	f.state = s
}

// ExportMap returns the attributes keyed by attribute name.
//
// Postcondition: The map holds exactly the five attribute keys.
func (f *Fighter) ExportMap() map[string]any {
	return map[string]any{
		KeyHealth:   f.state.Health,
		KeyStrength: f.state.Strength,
		KeyDefense:  f.state.Defense,
		KeyName:     f.state.Name,
		KeyLevel:    f.state.Level,
	}
}

// LoadMap validates data and replaces all five attributes from it. Integer
// attributes accept any Go integer type, and float64 values without a fraction
// (as produced by encoding/json). Unknown keys are ignored.
//
// Postcondition: On error the fighter is unchanged and the error is a
// *MissingFieldError or *TypeMismatchError.
func (f *Fighter) LoadMap(data map[string]any) error {
	s, err := StateFromMap(data)
	if err != nil {
		return err
	}
	f.state = s
	return nil
}

// StateFromMap decodes a State from an attribute map.
func StateFromMap(data map[string]any) (State, error) {
	var (
		s   State
		err error
	)
	if s.Health, err = intField(data, KeyHealth); err != nil {
		return State{}, err
	}
	if s.Strength, err = intField(data, KeyStrength); err != nil {
		return State{}, err
	}
	if s.Defense, err = intField(data, KeyDefense); err != nil {
		return State{}, err
	}
	if s.Name, err = stringField(data, KeyName); err != nil {
		return State{}, err
	}
	if s.Level, err = intField(data, KeyLevel); err != nil {
		return State{}, err
	}
	return s, nil
}

func intField(data map[string]any, key string) (int, error) {
	raw, ok := data[key]
	if !ok {
		return 0, &MissingFieldError{Field: key}
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt32 && v <= math.MaxInt32 {
			return int(v), nil
		}
	}
	return 0, &TypeMismatchError{Field: key, Want: "integer", Got: typeName(raw)}
}

func stringField(data map[string]any, key string) (string, error) {
	raw, ok := data[key]
	if !ok {
		return "", &MissingFieldError{Field: key}
	}
	s, ok := raw.(string)
	if !ok {
		return "", &TypeMismatchError{Field: key, Want: "string", Got: typeName(raw)}
	}
	return s, nil
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
