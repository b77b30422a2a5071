package format

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/LerianStudio/lib-ypbank/ypbank/binformat"
	"github.com/LerianStudio/lib-ypbank/ypbank/csvformat"
	"github.com/LerianStudio/lib-ypbank/ypbank/textformat"
	"github.com/LerianStudio/lib-ypbank/ypbank/transaction"
)

// ErrUnknownFormat is returned when a format name is not registered.
var ErrUnknownFormat = errors.New("unknown format")

// Codec decodes and encodes a whole transaction stream.
type Codec interface {
	Decode(r io.Reader) ([]transaction.Transaction, error)
	Encode(w io.Writer, txs []transaction.Transaction) error
}

// Format identifies one of the supported representations.
type Format string

const (
	// Text is the YPBankText key/value block format.
	Text Format = "text"
	// CSV is the YPBankCsv tabular format.
	CSV Format = "csv"
	// Binary is the YPBankBin framed binary format.
	Binary Format = "binary"
)

// DefaultName is the format used when a flag is left empty.
const DefaultName = string(Text)

var aliases = map[string]Format{
	"text":   Text,
	"csv":    CSV,
	"bin":    Binary,
	"binary": Binary,
}

var codecs = map[Format]Codec{
	Text:   textformat.Codec{},
	CSV:    csvformat.Codec{},
	Binary: binformat.Codec{},
}

// Parse resolves a format name. Names are case-insensitive and surrounding
// whitespace is ignored.
func Parse(name string) (Format, error) {
	f, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownFormat, name, strings.Join(Names(), ", "))
	}

	return f, nil
}

// Names returns every accepted format name, sorted.
func Names() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// String returns the canonical name of the format.
func (f Format) String() string {
	return string(f)
}

// Codec returns the codec for f.
//
//nolint:ireturn
func (f Format) Codec() (Codec, error) {
	c, ok := codecs[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}

	return c, nil
}

// Decode reads r entirely with the codec for f.
func (f Format) Decode(r io.Reader) ([]transaction.Transaction, error) {
	c, err := f.Codec()
	if err != nil {
		return nil, err
	}

	return c.Decode(r)
}

// Encode writes txs to w with the codec for f.
func (f Format) Encode(w io.Writer, txs []transaction.Transaction) error {
	c, err := f.Codec()
	if err != nil {
		return err
	}

	return c.Encode(w, txs)
}
