package core

// Registry is the type registry the loader, hydrator and transformer work
// against. silt.Context is the implementation.
type Registry interface {
	// RegisterType creates the collection for name. Names are unique
	// case-insensitively.
	RegisterType(name string, transforms []Transformation) (*Collection, error)

	// TypeStore looks a collection up case-insensitively.
	TypeStore(name string) (*Collection, error)

	// HasType reports whether name is registered.
	HasType(name string) bool

	// Types returns the registered names, original case, registration order.
	Types() []string
}
