package ports

// Registry is the contract of a host plugin registry.
// Registration is a one-shot action: a taken name is an error, never an overwrite.
type Registry interface {
	// Register makes factory available under name.
	// Returns domain.ErrPluginExists if the name is taken.
	Register(name string, factory InspectorFactory) error

	// New builds an inspector from the factory registered under name.
	// Returns domain.ErrPluginNotFound if nothing is registered under it.
	New(name string) (Inspector, error)
}
