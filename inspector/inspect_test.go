package inspector

import (
	"testing"

	"github.com/pthm-cable/cellsoup/components"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag    string
		widget Widget
		format string
		max    float32
	}{
		{"", WidgetLabel, "", 1},
		{"label,fmt:%.1f", WidgetLabel, "%.1f", 1},
		{"bar,max:200", WidgetBar, "", 200},
		{"bar,max:oops", WidgetBar, "", 1},
		{"skip", WidgetSkip, "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			w, format, maxVal := parseTag(tt.tag)
			if w != tt.widget || format != tt.format || maxVal != tt.max {
				t.Errorf("parseTag(%q) = %v %q %v, want %v %q %v", tt.tag, w, format, maxVal, tt.widget, tt.format, tt.max)
			}
		})
	}
}

func TestFieldsSkipsTaggedAndUnexported(t *testing.T) {
	org := components.Organism{ID: 4, ParentID: 2, BirthTick: 30}
	fields := Fields(&org)

	names := make(map[string]Field)
	for _, f := range fields {
		names[f.Name] = f
	}
	if _, ok := names["Cell"]; ok {
		t.Error("Cell is tagged skip and should not be listed")
	}
	if f, ok := names["ID"]; !ok || f.Text() != "4" {
		t.Errorf("ID field = %+v", f)
	}

	pos := Fields(components.Position{X: 1.25, Y: 3})
	if len(pos) != 2 || pos[0].Text() != "1.2" && pos[0].Text() != "1.3" {
		t.Errorf("position fields = %+v", pos)
	}
	if Fields(42) != nil {
		t.Error("non-struct should yield no fields")
	}
}

func TestBarValue(t *testing.T) {
	if v, ok := BarValue(float32(0.5)); !ok || v != 0.5 {
		t.Errorf("BarValue(float32) = %v, %v", v, ok)
	}
	if _, ok := BarValue("x"); ok {
		t.Error("strings are not bar values")
	}
}
