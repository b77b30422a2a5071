// Package constant provides the literals shared by the YPBank codecs.
//
// Keep this package free of runtime behavior.
// It is used by the binary, CSV and text codecs to avoid duplicated literals.
package constant
