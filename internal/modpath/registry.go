package modpath

import (
	"sync"
)

// ModuleType is the classification of an input in the whole program.
type ModuleType uint8

const (
	TypeUnknown  ModuleType = iota
	TypeCommonJS            // needs `.default` when referenced from outside
	TypeGoog                // goog.provide / goog.module file
	TypeScript              // plain script with no module shape
)

func (t ModuleType) String() string {
	switch t {
	case TypeCommonJS:
		return "commonjs"
	case TypeGoog:
		return "goog"
	case TypeScript:
		return "script"
	default:
		return "unknown"
	}
}

// Registry records module types by canonical module name.
type Registry struct {
	mu    sync.RWMutex
	types map[string]ModuleType
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]ModuleType)}
}

func (r *Registry) Set(moduleName string, t ModuleType) {
	r.mu.Lock()
	r.types[moduleName] = t
	r.mu.Unlock()
}

// Type returns the registered type, TypeUnknown for unknown modules.
func (r *Registry) Type(moduleName string) ModuleType {
	if r == nil {
		return TypeUnknown
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.types[moduleName]
}

// BaseProperty returns the expression prefix other files use to reach the
// module's value: "<name>.default" unless the module is known not to be
// CommonJS.
func (r *Registry) BaseProperty(moduleName string) string {
	switch r.Type(moduleName) {
	case TypeUnknown, TypeCommonJS:
		return moduleName + ".default"
	default:
		return moduleName
	}
}
