// Package csvformat implements the YPBankCsv codec.
//
// A document starts with a fixed header line followed by one line per
// transaction. The first seven columns are plain values; the eighth is the
// description wrapped in double quotes without any escaping, so a quoted
// description may contain commas.
package csvformat
