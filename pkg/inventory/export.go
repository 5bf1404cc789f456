package inventory

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
)

var (
	groupColor = color.New(color.FgCyan, color.Bold)
	hostColor  = color.New(color.FgGreen)
	varColor   = color.New(color.FgBlue)
)

// dynamicGroup is one group entry in the dynamic-inventory JSON document.
type dynamicGroup struct {
	Hosts    []string               `json:"hosts,omitempty"`
	Children []string               `json:"children,omitempty"`
	Vars     map[string]interface{} `json:"vars,omitempty"`
}

// DynamicInventory renders the graph as the JSON document the automation
// host reads from a dynamic inventory source (`--list`): per-group entries
// plus host variables under _meta.hostvars.
func (g *Graph) DynamicInventory() ([]byte, error) {
	doc := make(map[string]interface{})

	hostvars := make(map[string]map[string]interface{})
	for name, h := range g.Hosts {
		hostvars[name] = h.Vars
	}
	doc["_meta"] = map[string]interface{}{"hostvars": hostvars}

	for name, grp := range g.Groups {
		doc[name] = dynamicGroup{
			Hosts:    g.GroupHosts(name),
			Children: sortedKeys(grp.Children),
			Vars:     grp.Vars,
		}
	}

	allChildren := g.TopLevelGroups()
	allChildren = append(allChildren, "ungrouped")
	sort.Strings(allChildren)
	doc["all"] = dynamicGroup{Children: allChildren}
	doc["ungrouped"] = dynamicGroup{Hosts: g.UngroupedHosts()}

	return json.MarshalIndent(doc, "", "  ")
}

// HostVars returns the variables of one host (`--host`). The second return
// is false when the host is not in the inventory.
func (g *Graph) HostVars(name string) (map[string]interface{}, bool) {
	h, ok := g.Hosts[name]
	if !ok {
		return nil, false
	}
	return h.Vars, true
}

// Render writes an ansible-inventory style group tree:
//
//	@all:
//	  |--@web:
//	  |  |--host1
//	  |  |--{region = us-east}
//	  |--@ungrouped:
//
// Variables are included when withVars is set.
func (g *Graph) Render(w io.Writer, withVars bool) {
	fmt.Fprintf(w, "%s:\n", groupColor.Sprint("@all"))
	seen := make(map[string]bool)
	for _, name := range g.TopLevelGroups() {
		g.renderGroup(w, name, 1, withVars, seen)
	}
	fmt.Fprintf(w, "%s--%s:\n", treePrefix(1), groupColor.Sprint("@ungrouped"))
	for _, host := range g.UngroupedHosts() {
		g.renderHost(w, host, 2, withVars)
	}
}

func (g *Graph) renderGroup(w io.Writer, name string, depth int, withVars bool, seen map[string]bool) {
	fmt.Fprintf(w, "%s--%s:\n", treePrefix(depth), groupColor.Sprint("@"+name))
	if seen[name] {
		return
	}
	seen[name] = true

	grp := g.Groups[name]
	for _, child := range sortedKeys(grp.Children) {
		g.renderGroup(w, child, depth+1, withVars, seen)
	}
	for _, host := range g.GroupHosts(name) {
		g.renderHost(w, host, depth+1, withVars)
	}
	if withVars {
		renderVars(w, grp.Vars, depth+1)
	}
}

func (g *Graph) renderHost(w io.Writer, name string, depth int, withVars bool) {
	fmt.Fprintf(w, "%s--%s\n", treePrefix(depth), hostColor.Sprint(name))
	if withVars {
		renderVars(w, g.Hosts[name].Vars, depth+1)
	}
}

func renderVars(w io.Writer, vars map[string]interface{}, depth int) {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		entry := fmt.Sprintf("{%s = %v}", k, vars[k])
		fmt.Fprintf(w, "%s--%s\n", treePrefix(depth), varColor.Sprint(entry))
	}
}

func treePrefix(depth int) string {
	return strings.Repeat("  |", depth)
}
