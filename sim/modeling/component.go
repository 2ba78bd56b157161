// Package modeling provides the base types that simulated components build on.
package modeling

import (
	"log"
	"strings"
	"sync"

	"github.com/sarchlab/sumpaxi/sim/hooking"
	"github.com/sarchlab/sumpaxi/sim/timing"
)

// Named describes an object that has a name.
type Named interface {
	Name() string
}

// A Component is an element that is being simulated.
type Component interface {
	Named
	timing.Handler
	hooking.Hookable
}

// ComponentBase provides the name, lock and hooks that every component needs.
type ComponentBase struct {
	name string
	sync.Mutex
	hooking.HookableBase
}

// NewComponentBase creates a new ComponentBase.
func NewComponentBase(name string) *ComponentBase {
	NameMustBeValid(name)

	return &ComponentBase{name: name}
}

// Name returns the name of the component.
func (c *ComponentBase) Name() string {
	return c.name
}

// NameMustBeValid panics if the name is empty or contains white space.
// Hierarchical names use dots, as in "Host.Agent".
func NameMustBeValid(name string) {
	if name == "" {
		log.Panic("component name must not be empty")
	}

	if strings.ContainsAny(name, " \t\n") {
		log.Panicf("component name %q must not contain spaces", name)
	}

	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") {
		log.Panicf("component name %q must not start or end with a dot", name)
	}
}
