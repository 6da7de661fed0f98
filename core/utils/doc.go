// Package utils provides conversion helpers for the loosely-typed rows returned by
// SuiteQL, where the same column may arrive as a JSON number or a string.
package utils
