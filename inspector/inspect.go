// Package inspector turns tagged ECS components and cell state into labelled
// rows for the viewer's side panel.
package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/pthm-cable/cellsoup/sim"
)

// Widget selects how an inspected field is drawn.
type Widget int

const (
	WidgetLabel Widget = iota
	WidgetBar
	WidgetBool
	WidgetSkip
)

// Field is one labelled value in the inspector panel.
type Field struct {
	Name   string
	Value  any
	Widget Widget
	Format string  // fmt verb for labels
	Max    float32 // full scale for bars
}

// Text renders the field value using its format.
func (f Field) Text() string {
	if f.Format != "" {
		return fmt.Sprintf(f.Format, f.Value)
	}
	switch v := f.Value.(type) {
	case float32, float64:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprint(v)
	}
}

// parseTag reads an `inspect:"widget[,fmt:...][,max:...]"` tag.
func parseTag(tag string) (w Widget, format string, maxVal float32) {
	maxVal = 1
	parts := strings.Split(tag, ",")
	switch strings.TrimSpace(parts[0]) {
	case "bar":
		w = WidgetBar
	case "bool":
		w = WidgetBool
	case "skip":
		w = WidgetSkip
	}
	for _, part := range parts[1:] {
		key, val, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			continue
		}
		switch key {
		case "fmt":
			format = val
		case "max":
			if f, err := strconv.ParseFloat(val, 32); err == nil {
				maxVal = float32(f)
			}
		}
	}
	return w, format, maxVal
}

// Fields lists the exported, non-skipped fields of a component struct.
func Fields(component any) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field
	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		w, format, maxVal := parseTag(sf.Tag.Get("inspect"))
		if w == WidgetSkip {
			continue
		}
		if sf.Type.Kind() == reflect.Bool {
			w = WidgetBool
		}
		fields = append(fields, Field{
			Name:   sf.Name,
			Value:  v.Field(i).Interface(),
			Widget: w,
			Format: format,
			Max:    maxVal,
		})
	}
	return fields
}

// CellFields builds the inspector rows for one cell: its components,
// then its pools and units.
func CellFields(d sim.Detail) []Field {
	var fields []Field
	fields = append(fields, Fields(d.Organism)...)
	fields = append(fields, Fields(d.Position)...)
	fields = append(fields, Fields(d.Body)...)

	c := d.Cell
	if c == nil {
		return fields
	}
	s := c.Chem()
	fields = append(fields,
		Field{Name: "Phase", Value: c.Phase().String()},
		Field{Name: "Generation", Value: c.Generation},
		Field{Name: "Size", Value: c.Size()},
		Field{Name: "Energy", Value: s.EnergyRatio(), Widget: WidgetBar, Max: 1},
		Field{Name: "Sugar", Value: s.SugarRatio(), Widget: WidgetBar, Max: 1},
		Field{Name: "Polymers", Value: s.PolymerTotal()},
		Field{Name: "Proteins", Value: s.Proteins},
		Field{Name: "AminoAcids", Value: s.AminoAcids},
		Field{Name: "Speed", Value: c.Velocity.LengthSq(), Format: "%.3f"},
		Field{Name: "Degenerate", Value: c.Degenerate(), Widget: WidgetBool},
		Field{Name: "Genome", Value: c.Genome().Len(), Format: "%d entries"},
	)
	for _, u := range c.Internal() {
		fields = append(fields, Field{Name: u.Name(), Value: u.DeclaredSize(), Format: "size %.2f"})
	}
	for _, u := range c.Boundary() {
		fields = append(fields, Field{Name: u.Name(), Value: u.DeclaredSize(), Format: "size %.2f (boundary)"})
	}
	return fields
}

// BarValue extracts a float for bar widgets.
func BarValue(v any) (float32, bool) {
	switch x := v.(type) {
	case float32:
		return x, true
	case float64:
		return float32(x), true
	case int:
		return float32(x), true
	default:
		return 0, false
	}
}
