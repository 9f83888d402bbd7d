/*
Package plugin wraps the hello-world inspector into a named, configurable plugin.

A Plugin owns a Config by value and a fixed name, Name. It builds a fresh
inspector for every execution and can register itself in any ports.Registry.

# Usage

	p := plugin.New(plugin.NewConfig(true), plugin.WithLogger(logger))
	if err := p.Init(); err != nil {
		return err
	}
	if err := p.Register(reg); err != nil {
		return err // typically domain.ErrPluginExists
	}
	insp := p.CreateInspector()

The configuration flags are carried and logged but do not change what the
inspector prints.
*/
package plugin
