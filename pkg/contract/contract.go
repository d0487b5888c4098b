// Package contract models contract invocations as immutable values. The
// builder chain Interface → Instance → Invocation lets callers compose a
// request declaratively and reuse partially-built values (one Instance across
// many method calls) without repeating interface or address strings.
//
// Constructing an Invocation performs no I/O and no validation beyond
// presence; full precondition checks happen in the relay client before any
// network call.
package contract

// Interface identifies a logical contract type by name (e.g. "Mineral"),
// independent of any deployment address. Immutable once constructed.
type Interface struct {
	Name string
}

// New returns the Interface descriptor for the given contract type name.
func New(name string) Interface {
	return Interface{Name: name}
}

// Address binds the interface to a deployed contract address and returns the
// resulting Instance.
func (i Interface) Address(addr string) Instance {
	return Instance{Interface: i, Address: addr}
}

// Instance represents one deployed contract: an interface plus its chain
// address. Instances are values; sharing one across goroutines is safe.
type Instance struct {
	Interface Interface
	Address   string
}

// Method selects a contract method on the instance. Parameters are attached
// with Params; an Invocation with no parameters is already complete.
func (inst Instance) Method(name string) Invocation {
	return Invocation{Instance: inst, Method: name}
}

// Invocation fully describes one not-yet-executed contract call: instance,
// method name, and ordered parameters. It is a value object; two invocations
// built from the same chain are equal and serialize to identical request
// bodies.
type Invocation struct {
	Instance Instance
	Method   string
	Args     []any
}

// Params returns a copy of the invocation with the given ordered parameters.
// The original invocation is not modified, so a method selector can be reused
// with different parameter sets.
func (inv Invocation) Params(params ...any) Invocation {
	out := inv
	out.Args = append([]any(nil), params...)
	return out
}

// Complete reports whether interface name, instance address and method name
// are all non-empty. The relay client refuses incomplete invocations before
// issuing any HTTP request.
func (inv Invocation) Complete() bool {
	return inv.Instance.Interface.Name != "" && inv.Instance.Address != "" && inv.Method != ""
}
