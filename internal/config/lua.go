package config

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// loadLua evaluates a Lua config chunk and merges the table it returns into
// cfg. The chunk must end with `return { ... }`.
func loadLua(path string, cfg *Config) error {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return err
	}

	ret := L.Get(-1)
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return fmt.Errorf("config chunk returned %s, want table", ret.Type())
	}

	if names, ok := luaStrings(tbl.RawGetString("left")); ok {
		cfg.Left = names
	}
	if names, ok := luaStrings(tbl.RawGetString("middle")); ok {
		cfg.Middle = names
	}
	if names, ok := luaStrings(tbl.RawGetString("right")); ok {
		cfg.Right = names
	}
	if symbols, ok := luaStringMap(tbl.RawGetString("symbols")); ok {
		cfg.Symbols = symbols
	}
	if s, ok := luaString(tbl.RawGetString("dashboard_filetype")); ok {
		cfg.DashboardFiletype = s
	}
	if s, ok := luaString(tbl.RawGetString("vcs_prefix")); ok {
		cfg.VCSPrefix = s
	}
	return nil
}

func luaString(v lua.LValue) (string, bool) {
	if s, ok := v.(lua.LString); ok {
		return string(s), true
	}
	return "", false
}

func luaStrings(v lua.LValue) ([]string, bool) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		if s, ok := luaString(tbl.RawGetInt(i)); ok {
			out = append(out, s)
		}
	}
	return out, true
}

func luaStringMap(v lua.LValue) (map[string]string, bool) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil, false
	}
	out := make(map[string]string)
	tbl.ForEach(func(k, val lua.LValue) {
		key, kok := luaString(k)
		value, vok := luaString(val)
		if kok && vok {
			out[key] = value
		}
	})
	return out, true
}
