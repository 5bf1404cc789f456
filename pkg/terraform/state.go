package terraform

// Resource types that carry inventory data. Anything else in the state is
// ignored.
const (
	GroupResourceType = "ansible_group"
	HostResourceType  = "ansible_host"
)

// State is the decoded output of `terraform show -json`. Values is absent for
// an empty state.
type State struct {
	FormatVersion    string       `json:"format_version"`
	TerraformVersion string       `json:"terraform_version"`
	Values           *StateValues `json:"values"`
}

type StateValues struct {
	RootModule StateModule `json:"root_module"`
}

// StateModule is the root module or a nested child module. Address is empty
// for the root module.
type StateModule struct {
	Address      string          `json:"address"`
	Resources    []StateResource `json:"resources"`
	ChildModules []StateModule   `json:"child_modules"`
}

type StateResource struct {
	Address string                 `json:"address"`
	Mode    string                 `json:"mode"`
	Type    string                 `json:"type"`
	Name    string                 `json:"name"`
	Values  map[string]interface{} `json:"values"`
}

// Resources returns the root module's resources and, when searchChildModules
// is set, those of every child module, depth-first in declared order. The
// traversal is iterative with a per-module-address guard so a malformed,
// self-referencing module tree cannot loop.
func (s *State) Resources(searchChildModules bool) []StateResource {
	if s == nil || s.Values == nil {
		return nil
	}
	if !searchChildModules {
		return s.Values.RootModule.Resources
	}

	var out []StateResource
	seen := make(map[string]bool)
	stack := []*StateModule{&s.Values.RootModule}
	for len(stack) > 0 {
		mod := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[mod.Address] && mod.Address != "" {
			continue
		}
		seen[mod.Address] = true
		out = append(out, mod.Resources...)
		for i := len(mod.ChildModules) - 1; i >= 0; i-- {
			stack = append(stack, &mod.ChildModules[i])
		}
	}
	return out
}

// GroupAttrs is the inventory view of an ansible_group resource.
type GroupAttrs struct {
	Name      string
	Children  []string
	Variables map[string]interface{}
}

// HostAttrs is the inventory view of an ansible_host resource.
type HostAttrs struct {
	Name      string
	Groups    []string
	Variables map[string]interface{}
}

// Record is a resource decoded into exactly one of the recognized inventory
// kinds.
type Record struct {
	Group *GroupAttrs
	Host  *HostAttrs
}

// Classify decodes the recognized resources among rs into inventory records,
// preserving traversal order. Resources with other types, or without a name,
// are skipped without error.
func Classify(rs []StateResource) []Record {
	var records []Record
	for _, r := range rs {
		switch r.Type {
		case GroupResourceType:
			g := &GroupAttrs{
				Name:      stringValue(r.Values["name"]),
				Children:  stringSlice(r.Values["children"]),
				Variables: mapValue(r.Values["variables"]),
			}
			if g.Name != "" {
				records = append(records, Record{Group: g})
			}
		case HostResourceType:
			h := &HostAttrs{
				Name:      stringValue(r.Values["name"]),
				Groups:    stringSlice(r.Values["groups"]),
				Variables: mapValue(r.Values["variables"]),
			}
			if h.Name != "" {
				records = append(records, Record{Host: h})
			}
		}
	}
	return records
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return s
}

func stringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func mapValue(v interface{}) map[string]interface{} {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	return m
}
