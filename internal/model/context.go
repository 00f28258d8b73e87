// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package model

import "fmt"

// NameKind tags what a name resolves to in a Context.
type NameKind uint8

const (
	KindUnknown NameKind = iota
	KindVar
	KindClock
	KindAction
)

// VarDecl is a declared discrete variable, ranging over [Min, Max].
type VarDecl struct {
	Name     string
	Min, Max int64
}

// ClockDecl is a declared clock, in addition to the per-transition clocks
// every Petri/TAPN transition has implicitly (see firing.go).
type ClockDecl struct {
	Name string
}

// Context binds the names appearing in a model (and in the queries checked
// against it) to a variable, a clock or an action index, and fixes the
// layout of the discrete part of a State: var i of a model lives at
// VirtualMemory index i, in declaration order.
type Context struct {
	Vars    []VarDecl
	Clocks  []ClockDecl
	Actions []string

	varIndex    map[string]int
	clockIndex  map[string]int
	actionIndex map[string]int
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{
		varIndex:    map[string]int{},
		clockIndex:  map[string]int{},
		actionIndex: map[string]int{},
	}
}

// ErrDuplicateName is returned by DeclareVar/DeclareClock/DeclareAction when
// name is already bound to something in this Context.
var ErrDuplicateName = fmt.Errorf("model: duplicate name")

// DeclareVar adds a discrete variable and returns its index.
func (c *Context) DeclareVar(name string, min, max int64) (int, error) {
	if _, ok := c.Resolve(name); ok {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	idx := len(c.Vars)
	c.Vars = append(c.Vars, VarDecl{Name: name, Min: min, Max: max})
	c.varIndex[name] = idx
	return idx, nil
}

// DeclareClock adds a clock and returns its index.
func (c *Context) DeclareClock(name string) (int, error) {
	if _, ok := c.Resolve(name); ok {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	idx := len(c.Clocks)
	c.Clocks = append(c.Clocks, ClockDecl{Name: name})
	c.clockIndex[name] = idx
	return idx, nil
}

// DeclareAction adds an action and returns its index.
func (c *Context) DeclareAction(name string) (int, error) {
	if _, ok := c.Resolve(name); ok {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	idx := len(c.Actions)
	c.Actions = append(c.Actions, name)
	c.actionIndex[name] = idx
	return idx, nil
}

// Resolve reports what name is bound to, if anything.
func (c *Context) Resolve(name string) (NameKind, bool) {
	if _, ok := c.varIndex[name]; ok {
		return KindVar, true
	}
	if _, ok := c.clockIndex[name]; ok {
		return KindClock, true
	}
	if _, ok := c.actionIndex[name]; ok {
		return KindAction, true
	}
	return KindUnknown, false
}

// VarIndex returns the index of a declared variable.
func (c *Context) VarIndex(name string) (int, bool) { i, ok := c.varIndex[name]; return i, ok }

// ClockIndex returns the index of a declared clock.
func (c *Context) ClockIndex(name string) (int, bool) { i, ok := c.clockIndex[name]; return i, ok }

// ActionIndex returns the index of a declared action.
func (c *Context) ActionIndex(name string) (int, bool) { i, ok := c.actionIndex[name]; return i, ok }

// Layout describes the shape of the discrete VirtualMemory of a State built
// against this Context: one int64 cell per declared variable, in
// declaration order.
type Layout struct {
	Size int
}

// Layout returns the memory layout implied by the currently declared
// variables.
func (c *Context) Layout() Layout { return Layout{Size: len(c.Vars)} }

// NewMemory returns a zeroed VirtualMemory sized for this Context.
func (c *Context) NewMemory() VirtualMemory {
	return make(VirtualMemory, len(c.Vars))
}
