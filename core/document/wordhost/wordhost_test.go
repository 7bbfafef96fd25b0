package wordhost

import (
	"reflect"
	"testing"
)

func TestOpenArgs(t *testing.T) {
	got := openArgs(`C:\docs\old.doc.1234.tmp`)
	want := []interface{}{`C:\docs\old.doc.1234.tmp`, false, false, false}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("openArgs() = %v, want %v", got, want)
	}
}
