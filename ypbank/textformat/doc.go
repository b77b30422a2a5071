// Package textformat implements the YPBankText codec.
//
// Each transaction is a block of "KEY: value" lines. Blocks are separated by
// blank lines, lines starting with '#' are comments, and keys the codec does
// not know are ignored. Every known key must appear in each block; when a key
// repeats, the last value wins.
package textformat
