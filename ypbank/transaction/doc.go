// Package transaction defines the YPBank transaction record and the error
// taxonomy shared by every codec.
//
// Core types:
//   - Transaction is the flat, self-contained unit of interchange.
//   - Type and Status are closed enumerations with uppercase labels.
//   - Error carries one of four kinds (IO, PARSE, FORMAT, ENCODING).
//
// Codecs never mutate a Transaction after decoding it.
package transaction
