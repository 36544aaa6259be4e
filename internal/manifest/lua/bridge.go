package lua

import (
	"fmt"

	glua "github.com/yuin/gopher-lua"
)

// ToGoValue converts a Lua value to its Go representation.
//
// Tables with contiguous 1..n integer keys become []any; other tables
// become map[string]any. Numbers become int64 when integral, float64
// otherwise. Functions and userdata have no spec-file meaning and convert
// to nil; the manifest decoder inspects function-typed fields before
// bridging where their presence matters.
func ToGoValue(lv glua.LValue) any {
	return toGoValue(lv, make(map[*glua.LTable]bool))
}

func toGoValue(lv glua.LValue, visited map[*glua.LTable]bool) any {
	if lv == nil {
		return nil
	}

	switch v := lv.(type) {
	case glua.LBool:
		return bool(v)
	case glua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case glua.LString:
		return string(v)
	case *glua.LTable:
		if visited[v] {
			return nil // break cycles
		}
		visited[v] = true
		return tableToGo(v, visited)
	default:
		return nil
	}
}

// tableToGo converts a Lua table to either a Go slice or map.
func tableToGo(t *glua.LTable, visited map[*glua.LTable]bool) any {
	// Array check: contiguous positive integer keys starting at 1.
	isArray := true
	maxN := 0
	count := 0
	t.ForEach(func(k, _ glua.LValue) {
		count++
		kn, ok := k.(glua.LNumber)
		if !ok || float64(kn) != float64(int(kn)) || int(kn) <= 0 {
			isArray = false
			return
		}
		if int(kn) > maxN {
			maxN = int(kn)
		}
	})
	if count != maxN {
		isArray = false
	}

	if isArray && maxN > 0 {
		arr := make([]any, maxN)
		for i := 1; i <= maxN; i++ {
			arr[i-1] = toGoValue(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any)
	t.ForEach(func(k, v glua.LValue) {
		var key string
		switch kv := k.(type) {
		case glua.LString:
			key = string(kv)
		case glua.LNumber:
			key = fmt.Sprintf("%v", float64(kv))
		default:
			key = k.String()
		}
		m[key] = toGoValue(v, visited)
	})
	return m
}

// ToStringMap converts a Lua table to map[string]any, ignoring the
// positional (integer-keyed) entries. Descriptor tables mix a positional
// identifier with named fields; this extracts only the named part.
func ToStringMap(t *glua.LTable) map[string]any {
	m := make(map[string]any)
	t.ForEach(func(k, v glua.LValue) {
		ks, ok := k.(glua.LString)
		if !ok {
			return
		}
		m[string(ks)] = ToGoValue(v)
	})
	return m
}
