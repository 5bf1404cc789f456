package inventory

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func applySample(g *Graph) {
	g.AddGroup("web")
	g.AddChild("web", "frontend")
	g.AddChild("web", "backend")
	g.SetVariable("web", "region", "us-east")
	g.AddHost("app1")
	g.AddHostToGroup("app1", "frontend")
	g.SetVariable("app1", "ansible_host", "10.0.0.5")
}

func TestGraph_Idempotence(t *testing.T) {
	once := NewGraph()
	applySample(once)

	twice := NewGraph()
	applySample(twice)
	applySample(twice)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("re-applying identical mutations changed the graph:\n%s", diff)
	}
}

func TestAddChild_CreatesBothGroups(t *testing.T) {
	g := NewGraph()
	g.AddChild("parent", "child")

	if _, ok := g.Groups["parent"]; !ok {
		t.Error("parent group missing")
	}
	if _, ok := g.Groups["child"]; !ok {
		t.Error("child group missing")
	}
	if !g.Groups["parent"].Children["child"] {
		t.Error("parent→child edge missing")
	}
}

func TestAddHostToGroup_CreatesMissingGroup(t *testing.T) {
	g := NewGraph()
	g.AddHostToGroup("db1", "dbservers")

	if _, ok := g.Groups["dbservers"]; !ok {
		t.Fatal("membership must create the missing group")
	}
	if !g.Hosts["db1"].Groups["dbservers"] {
		t.Error("db1 not a member of dbservers")
	}
}

func TestSetVariable_LastWriteWins(t *testing.T) {
	g := NewGraph()
	g.AddGroup("web")
	g.SetVariable("web", "region", "us-east")
	g.SetVariable("web", "region", "us-west")

	if got := g.Groups["web"].Vars["region"]; got != "us-west" {
		t.Errorf("expected us-west, got %v", got)
	}
}

func TestSetVariable_HostShadowsGroup(t *testing.T) {
	g := NewGraph()
	g.AddGroup("node")
	g.AddHost("node")
	g.SetVariable("node", "port", 22)

	if got := g.Hosts["node"].Vars["port"]; got != 22 {
		t.Errorf("expected host variable, got %v", got)
	}
	if _, ok := g.Groups["node"].Vars["port"]; ok {
		t.Error("variable leaked onto the group of the same name")
	}
}

func TestTopLevelGroups(t *testing.T) {
	g := NewGraph()
	g.AddChild("web", "frontend")
	g.AddGroup("standalone")

	got := g.TopLevelGroups()
	want := []string{"standalone", "web"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected top-level groups:\n%s", diff)
	}
}

func TestGroupHostsAndUngrouped(t *testing.T) {
	g := NewGraph()
	g.AddHostToGroup("b", "web")
	g.AddHostToGroup("a", "web")
	g.AddHost("lonely")

	if diff := cmp.Diff([]string{"a", "b"}, g.GroupHosts("web")); diff != "" {
		t.Errorf("unexpected group hosts:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"lonely"}, g.UngroupedHosts()); diff != "" {
		t.Errorf("unexpected ungrouped hosts:\n%s", diff)
	}
}
