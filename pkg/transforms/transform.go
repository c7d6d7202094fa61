package transforms

import (
	"reflect"

	"github.com/rs/zerolog/log"
)

// Definition overrides fields on values of Type whose Match fields all equal the given strings
type Definition struct {
	Type  string                 `yaml:"type"`
	Match map[string]string      `yaml:"match"`
	Data  map[string]interface{} `yaml:"data"`
}

func (d *Definition) matches(inputValue reflect.Value) bool {
	for key, value := range d.Match {
		field := inputValue.FieldByName(key)
		if !field.IsValid() || field.Kind() != reflect.String || field.String() != value {
			return false
		}
	}

	return true
}

func (d *Definition) apply(inputValue reflect.Value) {
	if !d.matches(inputValue) {
		return
	}

	for key, value := range d.Data {
		field := inputValue.FieldByName(key)
		if !field.IsValid() || !field.CanSet() {
			continue
		}

		newValue := reflect.ValueOf(value)
		if !newValue.IsValid() || !newValue.Type().ConvertibleTo(field.Type()) {
			log.Warn().Str("type", d.Type).Str("field", key).Msg("Transform value does not fit field")
			continue
		}

		field.Set(newValue.Convert(field.Type()))
	}
}
