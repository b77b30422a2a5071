package binformat

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	constant "github.com/LerianStudio/lib-ypbank/ypbank/constants"
	"github.com/LerianStudio/lib-ypbank/ypbank/transaction"
)

var byteOrder = binary.BigEndian

var magic = []byte(constant.BinaryMagic)

// maxDescriptionLength keeps the body length inside a u32.
const maxDescriptionLength = math.MaxUint32 - constant.BinaryFixedBodySize

var typeCodes = map[byte]transaction.Type{
	0: transaction.TypeDeposit,
	1: transaction.TypeTransfer,
	2: transaction.TypeWithdrawal,
}

var typeBytes = map[transaction.Type]byte{
	transaction.TypeDeposit:    0,
	transaction.TypeTransfer:   1,
	transaction.TypeWithdrawal: 2,
}

var statusCodes = map[byte]transaction.Status{
	0: transaction.StatusSuccess,
	1: transaction.StatusFailure,
	2: transaction.StatusPending,
}

var statusBytes = map[transaction.Status]byte{
	transaction.StatusSuccess: 0,
	transaction.StatusFailure: 1,
	transaction.StatusPending: 2,
}

// Codec is the binary codec value registered by the format package.
type Codec struct{}

// Decode reads binary records until r is exhausted.
func (Codec) Decode(r io.Reader) ([]transaction.Transaction, error) {
	return Decode(r)
}

// Encode writes txs as binary records.
func (Codec) Encode(w io.Writer, txs []transaction.Transaction) error {
	return Encode(w, txs)
}

// Decode reads binary records until the stream ends on a record boundary.
func Decode(r io.Reader) ([]transaction.Transaction, error) {
	rd := &recordReader{r: bufio.NewReader(r)}

	var txs []transaction.Transaction

	for {
		tx, err := rd.next()
		if errors.Is(err, io.EOF) {
			return txs, nil
		}

		if err != nil {
			return nil, err
		}

		txs = append(txs, tx)
	}
}

// Encode writes one binary record per transaction, in order.
func Encode(w io.Writer, txs []transaction.Transaction) error {
	bw := bufio.NewWriter(w)

	for i := range txs {
		record, err := appendRecord(nil, txs[i])
		if err != nil {
			return err
		}

		if _, err := bw.Write(record); err != nil {
			return transaction.NewIOError(err)
		}
	}

	if err := bw.Flush(); err != nil {
		return transaction.NewIOError(err)
	}

	return nil
}

func appendRecord(buf []byte, tx transaction.Transaction) ([]byte, error) {
	typeCode, ok := typeBytes[tx.Type]
	if !ok {
		return nil, transaction.NewFormatError(constant.KeyType, fmt.Sprintf("unknown transaction type %q", tx.Type))
	}

	statusCode, ok := statusBytes[tx.Status]
	if !ok {
		return nil, transaction.NewFormatError(constant.KeyStatus, fmt.Sprintf("unknown transaction status %q", tx.Status))
	}

	if !utf8.ValidString(tx.Description) {
		return nil, transaction.NewEncodingError(constant.KeyDescription, "description is not valid UTF-8")
	}

	if uint64(len(tx.Description)) > maxDescriptionLength {
		return nil, transaction.NewFormatError(constant.KeyDescription, "description too long for binary record")
	}

	descLen := uint32(len(tx.Description))

	buf = append(buf, magic...)
	buf = byteOrder.AppendUint32(buf, constant.BinaryFixedBodySize+descLen)
	buf = byteOrder.AppendUint64(buf, tx.ID)
	buf = append(buf, typeCode)
	buf = byteOrder.AppendUint64(buf, tx.FromUserID)
	buf = byteOrder.AppendUint64(buf, tx.ToUserID)
	buf = byteOrder.AppendUint64(buf, uint64(tx.Amount))
	buf = byteOrder.AppendUint64(buf, tx.Timestamp)
	buf = append(buf, statusCode)
	buf = byteOrder.AppendUint32(buf, descLen)
	buf = append(buf, tx.Description...)

	return buf, nil
}

// recordReader decodes one record at a time and remembers how many records
// it has produced, for error context.
type recordReader struct {
	r       *bufio.Reader
	scratch [8]byte
	index   int
}

// next returns io.EOF only when the stream ends before the first magic byte.
func (rd *recordReader) next() (transaction.Transaction, error) {
	var tx transaction.Transaction

	head := rd.scratch[:constant.BinaryMagicSize]

	n, err := io.ReadFull(rd.r, head)
	if n == 0 && errors.Is(err, io.EOF) {
		return tx, io.EOF
	}

	if err != nil {
		return tx, rd.readError("magic", err)
	}

	if !bytes.Equal(head, magic) {
		return tx, transaction.NewFormatError("magic",
			fmt.Sprintf("invalid MAGIC header %q at record %d, expected %q", head, rd.index+1, constant.BinaryMagic))
	}

	// Body length is read but not checked; the record is rebuilt from the
	// fixed-width fields and the description length.
	if _, err := rd.readUint32("body length"); err != nil {
		return tx, err
	}

	if tx.ID, err = rd.readUint64(constant.KeyID); err != nil {
		return tx, err
	}

	typeCode, err := rd.readByte(constant.KeyType)
	if err != nil {
		return tx, err
	}

	var ok bool
	if tx.Type, ok = typeCodes[typeCode]; !ok {
		return tx, transaction.NewFormatError(constant.KeyType,
			fmt.Sprintf("unknown transaction type byte %d at record %d", typeCode, rd.index+1))
	}

	if tx.FromUserID, err = rd.readUint64(constant.KeyFromUserID); err != nil {
		return tx, err
	}

	if tx.ToUserID, err = rd.readUint64(constant.KeyToUserID); err != nil {
		return tx, err
	}

	amount, err := rd.readUint64(constant.KeyAmount)
	if err != nil {
		return tx, err
	}

	tx.Amount = int64(amount)

	if tx.Timestamp, err = rd.readUint64(constant.KeyTimestamp); err != nil {
		return tx, err
	}

	statusCode, err := rd.readByte(constant.KeyStatus)
	if err != nil {
		return tx, err
	}

	if tx.Status, ok = statusCodes[statusCode]; !ok {
		return tx, transaction.NewFormatError(constant.KeyStatus,
			fmt.Sprintf("unknown transaction status byte %d at record %d", statusCode, rd.index+1))
	}

	descLen, err := rd.readUint32("description length")
	if err != nil {
		return tx, err
	}

	var desc bytes.Buffer
	if _, err := io.CopyN(&desc, rd.r, int64(descLen)); err != nil {
		return tx, rd.readError(constant.KeyDescription, err)
	}

	if !utf8.Valid(desc.Bytes()) {
		return tx, transaction.NewEncodingError(constant.KeyDescription,
			fmt.Sprintf("description is not valid UTF-8 at record %d", rd.index+1))
	}

	tx.Description = desc.String()
	rd.index++

	return tx, nil
}

func (rd *recordReader) readByte(field string) (byte, error) {
	b, err := rd.r.ReadByte()
	if err != nil {
		return 0, rd.readError(field, err)
	}

	return b, nil
}

func (rd *recordReader) readUint32(field string) (uint32, error) {
	buf := rd.scratch[:4]
	if _, err := io.ReadFull(rd.r, buf); err != nil {
		return 0, rd.readError(field, err)
	}

	return byteOrder.Uint32(buf), nil
}

func (rd *recordReader) readUint64(field string) (uint64, error) {
	buf := rd.scratch[:8]
	if _, err := io.ReadFull(rd.r, buf); err != nil {
		return 0, rd.readError(field, err)
	}

	return byteOrder.Uint64(buf), nil
}

// readError turns an EOF inside a record into a format error and keeps any
// other failure as an I/O error.
func (rd *recordReader) readError(field string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return transaction.NewFormatError(field, fmt.Sprintf("truncated record %d", rd.index+1))
	}

	return transaction.NewIOError(err)
}
