// Package inventory holds the group/host graph built from state snapshots
// and its export formats.
package inventory

import "sort"

// Sink receives inventory mutations. Every operation is idempotent: repeating
// an identical call leaves the inventory unchanged. Nothing is ever removed.
type Sink interface {
	AddGroup(name string)
	AddChild(parent, child string)
	AddHost(name string)
	AddHostToGroup(host, group string)
	SetVariable(entity, key string, value interface{})
}

// Group is an inventory group with its nested child groups and variables.
type Group struct {
	Children map[string]bool
	Vars     map[string]interface{}
}

// Host is an inventory host with its group memberships and variables.
type Host struct {
	Groups map[string]bool
	Vars   map[string]interface{}
}

// Graph is the in-memory Sink implementation. Entities are keyed by name with
// merge-on-write semantics, so re-applying the same mutations cannot
// duplicate structure.
type Graph struct {
	Groups map[string]*Group
	Hosts  map[string]*Host
}

func NewGraph() *Graph {
	return &Graph{
		Groups: make(map[string]*Group),
		Hosts:  make(map[string]*Host),
	}
}

func (g *Graph) AddGroup(name string) {
	if _, ok := g.Groups[name]; !ok {
		g.Groups[name] = &Group{
			Children: make(map[string]bool),
			Vars:     make(map[string]interface{}),
		}
	}
}

// AddChild nests child under parent, creating either group as needed.
func (g *Graph) AddChild(parent, child string) {
	g.AddGroup(parent)
	g.AddGroup(child)
	g.Groups[parent].Children[child] = true
}

func (g *Graph) AddHost(name string) {
	if _, ok := g.Hosts[name]; !ok {
		g.Hosts[name] = &Host{
			Groups: make(map[string]bool),
			Vars:   make(map[string]interface{}),
		}
	}
}

// AddHostToGroup adds host as a member of group, creating both as needed.
func (g *Graph) AddHostToGroup(host, group string) {
	g.AddHost(host)
	g.AddGroup(group)
	g.Hosts[host].Groups[group] = true
}

// SetVariable sets a variable on the named entity, last write wins. The name
// is resolved against hosts first, then groups (created if absent).
func (g *Graph) SetVariable(entity, key string, value interface{}) {
	if h, ok := g.Hosts[entity]; ok {
		h.Vars[key] = value
		return
	}
	g.AddGroup(entity)
	g.Groups[entity].Vars[key] = value
}

// GroupHosts returns the sorted member hosts of a group.
func (g *Graph) GroupHosts(group string) []string {
	var hosts []string
	for name, h := range g.Hosts {
		if h.Groups[group] {
			hosts = append(hosts, name)
		}
	}
	sort.Strings(hosts)
	return hosts
}

// TopLevelGroups returns the sorted groups that are not a child of any other
// group.
func (g *Graph) TopLevelGroups() []string {
	nested := make(map[string]bool)
	for _, grp := range g.Groups {
		for child := range grp.Children {
			nested[child] = true
		}
	}
	var top []string
	for name := range g.Groups {
		if !nested[name] {
			top = append(top, name)
		}
	}
	sort.Strings(top)
	return top
}

// UngroupedHosts returns the sorted hosts that belong to no group.
func (g *Graph) UngroupedHosts() []string {
	var hosts []string
	for name, h := range g.Hosts {
		if len(h.Groups) == 0 {
			hosts = append(hosts, name)
		}
	}
	sort.Strings(hosts)
	return hosts
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
