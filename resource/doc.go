// Package resource provides the bridge's handle table.
//
// Native engine instances and render contexts are never exposed to script
// hosts as raw pointers. Instead each wrapped resource lives in a
// process-wide table and is referenced by an opaque integer handle with an
// explicit liveness flag: once a handle is dropped, every later lookup fails
// and the operation degrades to a defined sentinel instead of touching freed
// native state.
//
// # Handle Table
//
//	table := resource.NewTable()
//
//	// Insert a value, get a handle
//	handle := table.Insert(resource.TypePlayer, myValue)
//
//	// Retrieve value by handle
//	value, ok := table.Get(handle)
//
//	// Drop the resource; its Drop hook runs if implemented
//	value, ok := table.Remove(handle)
//
// # Type Safety
//
// Slots carry a type ID so a render handle cannot be used where a player
// handle is expected. GetTyped enforces the check.
//
// # Resource Accounting
//
// Observers receive created/dropped events and Len reports live resources;
// leak tests hook both.
package resource
