// Package provider drives terraform across the configured project paths and
// populates an inventory sink from the retrieved state snapshots.
package provider

import (
	"slices"

	"tfinv/pkg/config"
	"tfinv/pkg/inventory"
	"tfinv/pkg/logger"
	"tfinv/pkg/terraform"
)

// Provider builds an inventory from terraform state. The zero value is not
// usable; construct with New.
type Provider struct {
	run terraform.RunCommandFunc
}

// New returns a Provider using the given command runner, or the real
// subprocess runner when run is nil.
func New(run terraform.RunCommandFunc) *Provider {
	if run == nil {
		run = terraform.RunCommand
	}
	return &Provider{run: run}
}

// Parse processes every configured project path in order and applies the
// resulting records to sink. Paths whose state cannot be read due to a
// recoverable condition are skipped; any other failure aborts the run and
// nothing further is applied to sink.
func (p *Provider) Parse(cfg *config.Config, sink inventory.Sink) error {
	binary, err := terraform.LookupBinary(cfg.BinaryPath)
	if err != nil {
		return err
	}

	var states []*terraform.State
	for _, path := range cfg.ProjectPaths() {
		tf := terraform.NewCommands(p.run, path, binary, false)

		wctx, err := tf.WorkspaceList()
		if err != nil {
			if !terraform.IsWarning(err) {
				return err
			}
			// No named workspaces for this project.
			wctx = terraform.WorkspaceContext{Current: "default"}
		}

		if cfg.Workspace != wctx.Current && !slices.Contains(wctx.All, cfg.Workspace) {
			return &terraform.WorkspaceError{Path: path, Workspace: cfg.Workspace}
		}
		if cfg.Workspace != wctx.Current {
			if err := tf.WorkspaceSelect(cfg.Workspace); err != nil {
				return err
			}
		}

		state, err := tf.Show(cfg.StateFile)
		if err != nil {
			if terraform.IsWarning(err) {
				logger.L.Warn("skipping project path", "path", path, "reason", err.Error())
				continue
			}
			return err
		}
		states = append(states, state)
	}

	buildInventory(sink, states, cfg.SearchChildModules)
	return nil
}

// buildInventory applies all classified records in document order, then
// traversal order, so later paths overlay variables set by earlier ones.
func buildInventory(sink inventory.Sink, states []*terraform.State, searchChildModules bool) {
	for _, state := range states {
		for _, rec := range terraform.Classify(state.Resources(searchChildModules)) {
			switch {
			case rec.Group != nil:
				addGroup(sink, rec.Group)
			case rec.Host != nil:
				addHost(sink, rec.Host)
			}
		}
	}
}

func addGroup(sink inventory.Sink, attrs *terraform.GroupAttrs) {
	sink.AddGroup(attrs.Name)
	for _, child := range attrs.Children {
		sink.AddGroup(child)
		sink.AddChild(attrs.Name, child)
	}
	for key, value := range attrs.Variables {
		sink.SetVariable(attrs.Name, key, value)
	}
}

func addHost(sink inventory.Sink, attrs *terraform.HostAttrs) {
	sink.AddHost(attrs.Name)
	for _, group := range attrs.Groups {
		sink.AddGroup(group)
		sink.AddHostToGroup(attrs.Name, group)
	}
	for key, value := range attrs.Variables {
		sink.SetVariable(attrs.Name, key, value)
	}
}
