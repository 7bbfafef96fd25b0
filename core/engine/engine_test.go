package engine

import (
	"testing"

	"github.com/ankit-chaubey/fileprops/core"
)

func TestNew_RegistersEveryCategory(t *testing.T) {
	reg := New(nil, Options{NoHostProbe: true})
	for _, c := range core.Categories {
		if _, ok := reg.Handler(c); !ok {
			t.Errorf("no handler for %s", c)
		}
	}

	formats := reg.Formats()
	if len(formats) != len(core.Categories) {
		t.Fatalf("Formats() = %d entries", len(formats))
	}
	strip := map[core.Category]bool{}
	for _, f := range formats {
		strip[f.Category] = f.CanStrip
	}
	want := map[core.Category]bool{
		core.CatImage: true, core.CatPDF: true, core.CatDOCX: true,
		core.CatDOC: false, core.CatOther: false,
	}
	for c, w := range want {
		if strip[c] != w {
			t.Errorf("%s CanStrip = %v, want %v", c, strip[c], w)
		}
	}
}
