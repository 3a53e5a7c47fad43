package config

import (
	"reflect"
	"testing"
)

func TestLoadLua(t *testing.T) {
	path := writeFile(t, t.TempDir(), "statline.lua", `
local segments = { "mode", "filepath", "diagnostics" }
return {
	left = segments,
	right = { "vcs", "position" },
	symbols = { error = "E!", info = "i" },
	dashboard_filetype = "alpha",
	vcs_prefix = "svn:",
}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Left, []string{"mode", "filepath", "diagnostics"}) {
		t.Errorf("Left = %v", cfg.Left)
	}
	if !reflect.DeepEqual(cfg.Right, []string{"vcs", "position"}) {
		t.Errorf("Right = %v", cfg.Right)
	}
	if cfg.Symbols["error"] != "E!" || cfg.Symbols["info"] != "i" {
		t.Errorf("Symbols = %v", cfg.Symbols)
	}
	if cfg.DashboardFiletype != "alpha" {
		t.Errorf("DashboardFiletype = %q", cfg.DashboardFiletype)
	}
	if cfg.VCSPrefix != "svn:" {
		t.Errorf("VCSPrefix = %q", cfg.VCSPrefix)
	}
}

func TestLoadLua_PartialTable(t *testing.T) {
	path := writeFile(t, t.TempDir(), "statline.lua", `return { middle = { "filename" } }`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Middle, []string{"filename"}) {
		t.Errorf("Middle = %v", cfg.Middle)
	}
	if cfg.Left != nil {
		t.Errorf("Left = %v, want nil (default bucket)", cfg.Left)
	}
	if cfg.VCSPrefix != "git:" {
		t.Errorf("VCSPrefix = %q, want default", cfg.VCSPrefix)
	}
}

func TestLoadLua_NonTableReturn(t *testing.T) {
	path := writeFile(t, t.TempDir(), "statline.lua", `return 42`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() succeeded, want non-table error")
	}
}

func TestLoadLua_SyntaxError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "statline.lua", `return {`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() succeeded, want syntax error")
	}
}
