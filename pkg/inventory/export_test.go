package inventory

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func sampleGraph() *Graph {
	g := NewGraph()
	g.AddChild("web", "frontend")
	g.SetVariable("web", "region", "us-east")
	g.AddHostToGroup("app1", "frontend")
	g.SetVariable("app1", "ansible_host", "10.0.0.5")
	g.AddHost("lonely")
	return g
}

func TestDynamicInventory(t *testing.T) {
	out, err := sampleGraph().DynamicInventory()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc map[string]struct {
		Hosts    []string               `json:"hosts"`
		Children []string               `json:"children"`
		Vars     map[string]interface{} `json:"vars"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if diff := cmp.Diff([]string{"ungrouped", "web"}, doc["all"].Children); diff != "" {
		t.Errorf("unexpected all.children:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"frontend"}, doc["web"].Children); diff != "" {
		t.Errorf("unexpected web.children:\n%s", diff)
	}
	if doc["web"].Vars["region"] != "us-east" {
		t.Errorf("expected region=us-east, got %v", doc["web"].Vars)
	}
	if diff := cmp.Diff([]string{"app1"}, doc["frontend"].Hosts); diff != "" {
		t.Errorf("unexpected frontend hosts:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"lonely"}, doc["ungrouped"].Hosts); diff != "" {
		t.Errorf("unexpected ungrouped hosts:\n%s", diff)
	}

	var meta struct {
		Meta struct {
			HostVars map[string]map[string]interface{} `json:"hostvars"`
		} `json:"_meta"`
	}
	if err := json.Unmarshal(out, &meta); err != nil {
		t.Fatalf("decoding _meta: %v", err)
	}
	if meta.Meta.HostVars["app1"]["ansible_host"] != "10.0.0.5" {
		t.Errorf("expected hostvars for app1, got %v", meta.Meta.HostVars)
	}
}

func TestHostVars(t *testing.T) {
	g := sampleGraph()

	vars, ok := g.HostVars("app1")
	if !ok {
		t.Fatal("expected app1 to exist")
	}
	if vars["ansible_host"] != "10.0.0.5" {
		t.Errorf("unexpected vars: %v", vars)
	}

	if _, ok := g.HostVars("ghost"); ok {
		t.Error("expected miss for unknown host")
	}
}

func TestRender(t *testing.T) {
	color.NoColor = true

	var sb strings.Builder
	sampleGraph().Render(&sb, true)
	got := sb.String()

	want := `@all:
  |--@web:
  |  |--@frontend:
  |  |  |--app1
  |  |  |  |--{ansible_host = 10.0.0.5}
  |  |--{region = us-east}
  |--@ungrouped:
  |  |--lonely
`
	if got != want {
		t.Errorf("unexpected tree rendering:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRender_CyclicChildrenTerminates(t *testing.T) {
	color.NoColor = true

	g := NewGraph()
	g.AddChild("root", "a")
	g.AddChild("a", "b")
	g.AddChild("b", "a")

	var sb strings.Builder
	g.Render(&sb, false)

	if !strings.Contains(sb.String(), "@a") || !strings.Contains(sb.String(), "@b") {
		t.Errorf("expected both groups in output:\n%s", sb.String())
	}
}
