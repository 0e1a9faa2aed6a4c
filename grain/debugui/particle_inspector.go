package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/grainfall/grain"
)

// fieldRow is one line of the inspector: a field name, its formatted value and
// its nesting depth. Rows for nested structs without a String method have an
// empty value and are followed by their fields.
type fieldRow struct {
	Name  string
	Value string
	Depth int
}

// describe flattens the exported fields of a struct value into rows.
func describe(v any) []fieldRow {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	return appendFields(nil, val, 0)
}

func appendFields(rows []fieldRow, val reflect.Value, depth int) []fieldRow {
	for _, field := range inspectorFields.get(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				rows = append(rows, fieldRow{Name: field.Name, Value: "nil", Depth: depth})
				continue
			}
			fieldVal = fieldVal.Elem()
		}

		switch {
		case field.IsStringer:
			rows = append(rows, fieldRow{Name: field.Name, Value: fieldVal.Interface().(fmt.Stringer).String(), Depth: depth})
		case field.IsStruct:
			rows = append(rows, fieldRow{Name: field.Name, Depth: depth})
			rows = appendFields(rows, fieldVal, depth+1)
		default:
			rows = append(rows, fieldRow{Name: field.Name, Value: fmt.Sprintf("%v", fieldVal.Interface()), Depth: depth})
		}
	}
	return rows
}

// ParticleInspector shows the fields of the particle selected in the browser
// and of the particle under the cursor. Fields are shown read-only.
type ParticleInspector struct {
	selectedParticleId grain.ParticleId
}

func NewParticleInspector() *ParticleInspector {
	return &ParticleInspector{}
}

func (pi *ParticleInspector) Render(sim *grain.Simulation, selected grain.ParticleId, hovered *grain.Cell) {
	if !imgui.BeginV("Particle Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	pi.selectedParticleId = selected

	if pi.selectedParticleId == 0 {
		imgui.Text("No particle selected")
	} else if p, ok := sim.Particle(pi.selectedParticleId); ok {
		if imgui.TreeNodeStr(fmt.Sprintf("Particle %d", p.Id)) {
			renderRows(describe(p))
			imgui.Text(fmt.Sprintf("Active: %t", sim.IsActive(p.Id)))
			imgui.TreePop()
		}
	} else {
		imgui.Text(fmt.Sprintf("Particle %d not found", pi.selectedParticleId))
	}

	imgui.Separator()

	if hovered == nil {
		imgui.Text("Cursor outside the grid")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Cursor: %s", hovered))
	if occ, ok := sim.OccupancyAt(*hovered); ok {
		renderRows(describe(occ))
	} else {
		imgui.Text("empty")
	}

	imgui.End()
}

func renderRows(rows []fieldRow) {
	for _, row := range rows {
		indent := strings.Repeat("  ", row.Depth)
		if row.Value == "" {
			imgui.Text(fmt.Sprintf("%s%s:", indent, row.Name))
			continue
		}
		imgui.Text(fmt.Sprintf("%s%s: %s", indent, row.Name, row.Value))
	}
}
