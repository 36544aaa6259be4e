package lua

import (
	"reflect"
	"testing"

	glua "github.com/yuin/gopher-lua"
)

func TestToGoValueScalars(t *testing.T) {
	tests := []struct {
		name string
		lv   glua.LValue
		want any
	}{
		{"nil", glua.LNil, nil},
		{"true", glua.LTrue, true},
		{"false", glua.LFalse, false},
		{"integer", glua.LNumber(1000), int64(1000)},
		{"float", glua.LNumber(1.5), 1.5},
		{"negative integer", glua.LNumber(-3), int64(-3)},
		{"string", glua.LString("folke/tokyonight.nvim"), "folke/tokyonight.nvim"},
		{"empty string", glua.LString(""), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToGoValue(tt.lv)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ToGoValue(%v) = %#v, want %#v", tt.lv, got, tt.want)
			}
		})
	}
}

func TestToGoValueArray(t *testing.T) {
	L := glua.NewState()
	defer L.Close()

	tbl := L.NewTable()
	tbl.Append(glua.LString("a"))
	tbl.Append(glua.LString("b"))
	tbl.Append(glua.LNumber(3))

	got := ToGoValue(tbl)
	want := []any{"a", "b", int64(3)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToGoValue() = %#v, want %#v", got, want)
	}
}

func TestToGoValueMap(t *testing.T) {
	L := glua.NewState()
	defer L.Close()

	tbl := L.NewTable()
	tbl.RawSetString("lazy", glua.LFalse)
	tbl.RawSetString("priority", glua.LNumber(1000))

	got := ToGoValue(tbl)
	want := map[string]any{"lazy": false, "priority": int64(1000)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToGoValue() = %#v, want %#v", got, want)
	}
}

func TestToGoValueMixedTable(t *testing.T) {
	// A table with both positional and named entries is not an array.
	L := glua.NewState()
	defer L.Close()

	tbl := L.NewTable()
	tbl.Append(glua.LString("owner/repo"))
	tbl.RawSetString("lazy", glua.LTrue)

	got, ok := ToGoValue(tbl).(map[string]any)
	if !ok {
		t.Fatalf("ToGoValue() = %T, want map[string]any", ToGoValue(tbl))
	}
	if got["lazy"] != true {
		t.Errorf("lazy = %v, want true", got["lazy"])
	}
	if got["1"] != "owner/repo" {
		t.Errorf("positional entry = %v, want %q", got["1"], "owner/repo")
	}
}

func TestToGoValueSparseTable(t *testing.T) {
	// A gap in the integer keys demotes the table to a map.
	L := glua.NewState()
	defer L.Close()

	tbl := L.NewTable()
	tbl.RawSetInt(1, glua.LString("a"))
	tbl.RawSetInt(3, glua.LString("c"))

	if _, ok := ToGoValue(tbl).([]any); ok {
		t.Error("ToGoValue() returned array for sparse table, want map")
	}
}

func TestToGoValueNested(t *testing.T) {
	L := glua.NewState()
	defer L.Close()

	opts := L.NewTable()
	opts.RawSetString("style", glua.LString("night"))

	tbl := L.NewTable()
	tbl.RawSetString("opts", opts)

	got := ToGoValue(tbl)
	want := map[string]any{"opts": map[string]any{"style": "night"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToGoValue() = %#v, want %#v", got, want)
	}
}

func TestToGoValueCircular(t *testing.T) {
	L := glua.NewState()
	defer L.Close()

	tbl := L.NewTable()
	tbl.RawSetString("self", tbl)

	got, ok := ToGoValue(tbl).(map[string]any)
	if !ok {
		t.Fatalf("ToGoValue() = %T, want map[string]any", ToGoValue(tbl))
	}
	if got["self"] != nil {
		t.Errorf("circular reference = %v, want nil", got["self"])
	}
}

func TestToGoValueFunction(t *testing.T) {
	L := glua.NewState()
	defer L.Close()

	fn := L.NewFunction(func(*glua.LState) int { return 0 })
	if got := ToGoValue(fn); got != nil {
		t.Errorf("ToGoValue(function) = %v, want nil", got)
	}
}

func TestToStringMap(t *testing.T) {
	L := glua.NewState()
	defer L.Close()

	tbl := L.NewTable()
	tbl.Append(glua.LString("owner/repo"))
	tbl.RawSetString("lazy", glua.LFalse)
	tbl.RawSetString("priority", glua.LNumber(50))

	got := ToStringMap(tbl)
	want := map[string]any{"lazy": false, "priority": int64(50)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToStringMap() = %#v, want %#v", got, want)
	}
}
