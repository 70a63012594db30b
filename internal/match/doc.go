// Package match finds the closest known name for a misspelled directive,
// annotation or class name so diagnostics can suggest a correction.
package match
