package format

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"

	"github.com/LerianStudio/lib-ypbank/ypbank/log"
	"github.com/LerianStudio/lib-ypbank/ypbank/transaction"
)

// ErrNilWriter is returned by Write when no destination is given.
var ErrNilWriter = errors.New("writer is nil")

// Load opens path, decodes it entirely with f and closes the file on every
// path. Open and close failures are reported as transaction I/O errors.
func Load(ctx context.Context, logger log.Logger, path string, f Format) (txs []transaction.Transaction, err error) {
	if logger == nil {
		logger = log.NewNop()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, transaction.NewIOError(err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			txs, err = nil, transaction.NewIOError(closeErr)
		}
	}()

	txs, err = f.Decode(file)
	if err != nil {
		log.SafeError(logger, ctx, "decode failed", err, false)

		return nil, err
	}

	logger.Log(ctx, log.LevelDebug, "decoded transactions",
		log.String("path", path),
		log.String("format", f.String()),
		log.Int("count", len(txs)),
	)

	return txs, nil
}

// Write encodes txs with f in memory and copies the result to w only when
// encoding succeeds, so a failed encode leaves w untouched.
func Write(ctx context.Context, logger log.Logger, w io.Writer, f Format, txs []transaction.Transaction) error {
	if w == nil {
		return ErrNilWriter
	}

	if logger == nil {
		logger = log.NewNop()
	}

	c, err := f.Codec()
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	if err := c.Encode(&buf, txs); err != nil {
		log.SafeError(logger, ctx, "encode failed", err, false)

		return err
	}

	size := buf.Len()

	if _, err := buf.WriteTo(w); err != nil {
		return transaction.NewIOError(err)
	}

	logger.Log(ctx, log.LevelDebug, "encoded transactions",
		log.String("format", f.String()),
		log.Int("count", len(txs)),
		log.Int("bytes", size),
	)

	return nil
}
