// Package templating renders text templates with "{{" and "}}"
// placeholders. Parse splits a template into a tree of literal and
// variable nodes; Render walks that tree against a map of bindings and
// substitutes each variable with its bound value, or the empty string
// when it is unbound.
//
// The Engine type wraps the core with file handling: it merges stamp
// info files, binding files and explicit NAME=VALUE variables into a
// single context, then expands a template file against it.
package templating
