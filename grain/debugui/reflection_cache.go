package debugui

import (
	"fmt"
	"reflect"
	"sync"
)

var stringerType = reflect.TypeFor[fmt.Stringer]()

// FieldInfo describes an exported struct field shown by the inspector. Type is
// the element type for pointer fields.
type FieldInfo struct {
	Name       string
	Type       reflect.Type
	Index      int
	IsPointer  bool
	IsStruct   bool
	IsStringer bool
}

// fieldCache memoizes the exported fields of each struct type.
type fieldCache struct {
	fields sync.Map // reflect.Type -> []FieldInfo
}

func (c *fieldCache) get(t reflect.Type) []FieldInfo {
	if cached, ok := c.fields.Load(t); ok {
		return cached.([]FieldInfo)
	}
	actual, _ := c.fields.LoadOrStore(t, collectFields(t))
	return actual.([]FieldInfo)
}

func collectFields(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return nil
	}

	fields := make([]FieldInfo, 0, t.NumField())
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldType := field.Type
		isPointer := fieldType.Kind() == reflect.Pointer
		if isPointer {
			fieldType = fieldType.Elem()
		}

		fields = append(fields, FieldInfo{
			Name:       field.Name,
			Type:       fieldType,
			Index:      i,
			IsPointer:  isPointer,
			IsStruct:   fieldType.Kind() == reflect.Struct,
			IsStringer: fieldType.Implements(stringerType),
		})
	}
	return fields
}

var inspectorFields fieldCache
