// Package utils provides small conversion helpers shared by the sources and the
// HTTP handlers, such as turning database values and path parameters into
// identifiers.
package utils
