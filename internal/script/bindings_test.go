package script

import (
	"context"
	"testing"
)

func TestBindings_ProjectFiles(t *testing.T) {
	r, _ := newTestRunner(t, map[string]string{
		"/proj/a.cpp": "int a;\n",
		"/proj/b.h":   "int b;\n",
		"/proj/c.txt": "c\n",
	})
	r.DryRun = true
	_, err := r.Run(context.Background(), "files.lua", `
local graft = require("graft")
if graft.project.root() ~= "/proj" then error("root: " .. graft.project.root()) end
local all = graft.project.files()
if #all ~= 3 then error("expected 3 files, got " .. #all) end
local cpp = graft.project.files("cpp")
if #cpp ~= 1 or cpp[1] ~= "/proj/a.cpp" then error("cpp filter: " .. #cpp) end
local doc, msg = graft.project.open("/proj/missing.cpp")
if doc ~= nil or msg == nil then error("expected open to fail") end
`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestBindings_Navigation(t *testing.T) {
	r, _ := newTestRunner(t, map[string]string{"/proj/main.cpp": " { a { b } c } "})
	r.DryRun = true
	_, err := r.Run(context.Background(), "nav.lua", `
local graft = require("graft")
local doc = graft.project.open("/proj/main.cpp")
doc:set_cursor(7)
local start = doc:goto_block_start()
if start ~= 5 then error("block start: expected 5, got " .. start) end
if doc:cursor() ~= 5 then error("cursor: expected 5, got " .. doc:cursor()) end
doc:set_cursor(7)
local stop = doc:goto_block_end()
if stop ~= 10 then error("block end: expected 10, got " .. stop) end
doc:select(5, 10)
if doc:selected_text() ~= "{ b }" then error("selected: " .. doc:selected_text()) end
`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestBindings_ToggleComment(t *testing.T) {
	r, _ := newTestRunner(t, map[string]string{"/proj/main.cpp": "int x;\n"})
	r.DryRun = true
	_, err := r.Run(context.Background(), "comment.lua", `
local graft = require("graft")
local doc = graft.project.open("/proj/main.cpp")
doc:set_cursor(2)
doc:toggle_comment()
if doc:text() ~= "//int x;\n" then error("text: " .. doc:text()) end
if doc:cursor() ~= 4 then error("cursor: expected 4, got " .. doc:cursor()) end
if not doc:dirty() then error("expected the document dirty") end
`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestBindings_Lines(t *testing.T) {
	r, _ := newTestRunner(t, map[string]string{"/proj/main.cpp": "int x;\nint y;\n"})
	r.DryRun = true
	_, err := r.Run(context.Background(), "lines.lua", `
local graft = require("graft")
local doc = graft.project.open("/proj/main.cpp")
if doc:line_count() ~= 3 then error("line_count: " .. doc:line_count()) end
if doc:line(1) ~= "int x;" then error("line 1: " .. doc:line(1)) end
if doc:line(2) ~= "int y;" then error("line 2: " .. doc:line(2)) end
if doc:line(9) ~= nil then error("expected nil out of range") end
if doc:line(0) ~= nil then error("expected nil for line 0") end
`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestBindings_Includes(t *testing.T) {
	r, _ := newTestRunner(t, map[string]string{
		"/proj/main.cpp": "#include <vector>\n#include \"a.h\"\n\nint main() {}\n",
	})
	r.DryRun = true
	_, err := r.Run(context.Background(), "includes.lua", `
local graft = require("graft")
local doc = graft.project.open("/proj/main.cpp")
local incs = doc:includes()
if #incs ~= 2 then error("expected 2 includes, got " .. #incs) end
if incs[1].name ~= "<vector>" or incs[1].line ~= 1 then error("first: " .. incs[1].name) end
if incs[2].name ~= '"a.h"' or incs[2].line ~= 2 then error("second: " .. incs[2].name) end
`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestBindings_Settings(t *testing.T) {
	r, _ := newTestRunner(t, map[string]string{"/proj/main.cpp": "int x;\n"})
	r.DryRun = true
	_, err := r.Run(context.Background(), "settings.lua", `
local graft = require("graft")
graft.settings.set("run.count", 3)
graft.settings.set("run.name", "probe")
graft.settings.set("run.ok", true)
if graft.settings.get("run.count") ~= 3 then error("count") end
if graft.settings.get("run.name") ~= "probe" then error("name") end
if graft.settings.get("run.ok") ~= true then error("ok") end
if graft.settings.get("run.missing") ~= nil then error("missing") end
graft.settings.set("run.ok", nil)
if graft.settings.get("run.ok") ~= nil then error("delete") end
`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := r.store.GetInt("run.count", 0); got != 3 {
		t.Errorf("expected run.count 3, got %d", got)
	}
	if got := r.store.GetString("run.name", ""); got != "probe" {
		t.Errorf("expected run.name probe, got %q", got)
	}
	if _, ok := r.store.Get("run.ok"); ok {
		t.Error("expected run.ok deleted")
	}
}

func TestBindings_AddMember(t *testing.T) {
	r, mem := newTestRunner(t, map[string]string{
		"/proj/myclass.h": "class MyClass\n{\npublic:\n    MyClass();\n};\n",
	})
	_, err := r.Run(context.Background(), "member.lua", `
local graft = require("graft")
local doc = graft.project.open("/proj/myclass.h")
if not doc:is_header() then error("expected a header") end
if not doc:add_member("int m_count", "MyClass", "private") then error("add_member failed") end
`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	data, err := mem.ReadFile("/proj/myclass.h")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	want := "class MyClass\n{\npublic:\n    MyClass();\n\nprivate:\n    int m_count;\n};\n"
	if string(data) != want {
		t.Errorf("unexpected content:\n%s", string(data))
	}
}

func TestBindings_BadAccessSpecifier(t *testing.T) {
	r, _ := newTestRunner(t, map[string]string{
		"/proj/myclass.h": "class MyClass\n{\n};\n",
	})
	r.DryRun = true
	_, err := r.Run(context.Background(), "member.lua", `
local graft = require("graft")
graft.project.open("/proj/myclass.h"):add_member("int m_x", "MyClass", "friendly")
`)
	if err == nil {
		t.Fatal("expected an error for an unknown access specifier")
	}
}

func TestBindings_Symbols(t *testing.T) {
	r, _ := newTestRunner(t, map[string]string{
		"/proj/main.cpp": "void run() {}\n",
	})
	r.DryRun = true
	_, err := r.Run(context.Background(), "symbols.lua", `
local graft = require("graft")
local doc = graft.project.open("/proj/main.cpp")
local syms = doc:symbols()
if #syms ~= 1 then error("expected 1 symbol, got " .. #syms) end
if syms[1].name ~= "run" then error("name: " .. syms[1].name) end
if syms[1].kind ~= "function" then error("kind: " .. syms[1].kind) end
if syms[1].from ~= 0 then error("from: " .. syms[1].from) end
doc:set_cursor(6)
local cur = doc:current_function()
if cur == nil or cur.name ~= "run" then error("current_function") end
`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestBindings_HeaderSource(t *testing.T) {
	r, _ := newTestRunner(t, map[string]string{
		"/proj/widget.h":   "class Widget;\n",
		"/proj/widget.cpp": "#include \"widget.h\"\n",
	})
	r.DryRun = true
	_, err := r.Run(context.Background(), "pair.lua", `
local graft = require("graft")
local doc = graft.project.open("/proj/widget.cpp")
if doc:is_header() then error("expected a source file") end
if doc:header_source() ~= "/proj/widget.h" then
	error("pair: " .. tostring(doc:header_source()))
end
local other = doc:open_header_source()
if other == nil then error("expected the header to open") end
if other:path() ~= "/proj/widget.h" then error("path: " .. other:path()) end
if not other:is_header() then error("expected a header") end
`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}
