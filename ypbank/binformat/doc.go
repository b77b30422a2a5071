// Package binformat implements the YPBankBin binary codec.
//
// Every record is framed by the ASCII magic "YPBN" and a big-endian body
// length, followed by fixed-width big-endian fields and a length-prefixed
// UTF-8 description. There is no file header or record count: decoding runs
// until the stream ends exactly on a record boundary.
//
// Encode writes a body length of 46 plus the description length. Decode
// reads the field and ignores it.
package binformat
