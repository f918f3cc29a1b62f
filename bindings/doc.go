// Package bindings loads template bindings from YAML and JSON files.
// Nested documents are flattened into dotted keys so that a file like
//
//	app:
//	  name: demo
//
// binds "app.name" to "demo".
package bindings
