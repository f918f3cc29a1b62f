// Package stamper reads build status files and substitutes single-brace
// {KEY} references. LoadStamps parses status files into a map and
// Expand applies such a map to a string.
package stamper
