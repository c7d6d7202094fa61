package transforms

import "reflect"

type Transformer struct {
	definitions map[string][]*Definition
}

func NewTransformer(definitions []*Definition) *Transformer {
	transformer := &Transformer{
		definitions: map[string][]*Definition{},
	}

	for _, definition := range definitions {
		transformer.definitions[definition.Type] = append(transformer.definitions[definition.Type], definition)
	}

	return transformer
}

func (t *Transformer) Len() int {
	count := 0
	for _, definitions := range t.definitions {
		count += len(definitions)
	}

	return count
}

// Transform walks the input, which must be a pointer or slice for changes to stick,
// and applies every definition registered for each struct type it finds
func (t *Transformer) Transform(input interface{}) {
	if t == nil || len(t.definitions) == 0 || input == nil {
		return
	}

	t.transformValue(reflect.ValueOf(input))
}

func (t *Transformer) transformValue(inputValue reflect.Value) {
	switch inputValue.Kind() {
	case reflect.Pointer, reflect.Interface:
		if inputValue.IsNil() {
			return
		}
		t.transformValue(inputValue.Elem())
	case reflect.Slice, reflect.Array:
		for i := 0; i < inputValue.Len(); i++ {
			t.transformValue(inputValue.Index(i))
		}
	case reflect.Struct:
		for _, definition := range t.definitions[inputValue.Type().String()] {
			definition.apply(inputValue)
		}

		for i := 0; i < inputValue.NumField(); i++ {
			if !inputValue.Type().Field(i).IsExported() {
				continue
			}

			t.transformValue(inputValue.Field(i))
		}
	}
}
