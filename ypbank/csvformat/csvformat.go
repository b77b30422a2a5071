package csvformat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	constant "github.com/LerianStudio/lib-ypbank/ypbank/constants"
	"github.com/LerianStudio/lib-ypbank/ypbank/internal/lines"
	"github.com/LerianStudio/lib-ypbank/ypbank/transaction"
)

const (
	separator = ','
	quote     = '"'
)

var typeLabels = map[string]transaction.Type{
	constant.DEPOSIT:    transaction.TypeDeposit,
	constant.TRANSFER:   transaction.TypeTransfer,
	constant.WITHDRAWAL: transaction.TypeWithdrawal,
}

var typeNames = map[transaction.Type]string{
	transaction.TypeDeposit:    constant.DEPOSIT,
	transaction.TypeTransfer:   constant.TRANSFER,
	transaction.TypeWithdrawal: constant.WITHDRAWAL,
}

var statusLabels = map[string]transaction.Status{
	constant.SUCCESS: transaction.StatusSuccess,
	constant.FAILURE: transaction.StatusFailure,
	constant.PENDING: transaction.StatusPending,
}

var statusNames = map[transaction.Status]string{
	transaction.StatusSuccess: constant.SUCCESS,
	transaction.StatusFailure: constant.FAILURE,
	transaction.StatusPending: constant.PENDING,
}

// Codec is the CSV codec value registered by the format package.
type Codec struct{}

// Decode parses a CSV document.
func (Codec) Decode(r io.Reader) ([]transaction.Transaction, error) {
	return Decode(r)
}

// Encode writes txs as a CSV document.
func (Codec) Encode(w io.Writer, txs []transaction.Transaction) error {
	return Encode(w, txs)
}

// Decode parses a CSV document. The header line is skipped without
// validation and blank lines are ignored.
func Decode(r io.Reader) ([]transaction.Transaction, error) {
	lr := lines.NewReader(r)

	if _, _, err := lr.Next(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, transaction.NewIOError(err)
	}

	var txs []transaction.Transaction

	for {
		line, number, err := lr.Next()
		if errors.Is(err, io.EOF) {
			return txs, nil
		}

		if err != nil {
			return nil, transaction.NewIOError(err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		tx, err := parseRecord(line, number)
		if err != nil {
			return nil, err
		}

		txs = append(txs, tx)
	}
}

// SplitLine splits a record line into at most eight fields. A double quote
// toggles quoted mode, in which commas are literal; quote characters are kept
// in the field text. Everything after the seventh separator belongs to the
// last field.
func SplitLine(line string) []string {
	fields := make([]string, 0, constant.CSVFieldCount)
	inQuotes := false
	start := 0

	for i := 0; i < len(line); i++ {
		switch line[i] {
		case quote:
			inQuotes = !inQuotes
		case separator:
			if inQuotes {
				continue
			}

			fields = append(fields, line[start:i])
			start = i + 1

			if len(fields) == constant.CSVFieldCount-1 {
				return append(fields, line[start:])
			}
		}
	}

	return append(fields, line[start:])
}

func parseRecord(line string, number int) (transaction.Transaction, error) {
	var tx transaction.Transaction

	fields := SplitLine(line)
	if len(fields) < constant.CSVFieldCount {
		return tx, transaction.NewFormatError("",
			fmt.Sprintf("line %d: expected %d fields, got %d: %s", number, constant.CSVFieldCount, len(fields), line))
	}

	// Quotes only group characters in the leading columns; the description
	// keeps its own quoting.
	for i := 0; i < constant.CSVFieldCount-1; i++ {
		fields[i] = strings.TrimSpace(strings.ReplaceAll(fields[i], string(quote), ""))
	}

	var err error

	if tx.ID, err = parseUint(fields[0], constant.KeyID, number); err != nil {
		return tx, err
	}

	var ok bool
	if tx.Type, ok = typeLabels[fields[1]]; !ok {
		return tx, transaction.NewFormatError(constant.KeyType,
			fmt.Sprintf("line %d: unknown transaction type %q", number, fields[1]))
	}

	if tx.FromUserID, err = parseUint(fields[2], constant.KeyFromUserID, number); err != nil {
		return tx, err
	}

	if tx.ToUserID, err = parseUint(fields[3], constant.KeyToUserID, number); err != nil {
		return tx, err
	}

	if tx.Amount, err = strconv.ParseInt(fields[4], 10, 64); err != nil {
		return tx, transaction.NewParseError(constant.KeyAmount,
			fmt.Sprintf("line %d: invalid value %q", number, fields[4]), err)
	}

	if tx.Timestamp, err = parseUint(fields[5], constant.KeyTimestamp, number); err != nil {
		return tx, err
	}

	if tx.Status, ok = statusLabels[fields[6]]; !ok {
		return tx, transaction.NewFormatError(constant.KeyStatus,
			fmt.Sprintf("line %d: unknown transaction status %q", number, fields[6]))
	}

	tx.Description = unquote(strings.TrimSpace(fields[7]))

	return tx, nil
}

func parseUint(value, field string, number int) (uint64, error) {
	v, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, transaction.NewParseError(field, fmt.Sprintf("line %d: invalid value %q", number, value), err)
	}

	return v, nil
}

// unquote strips one layer of surrounding double quotes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == quote && s[len(s)-1] == quote {
		return s[1 : len(s)-1]
	}

	return s
}

// Encode writes the header followed by one line per transaction.
func Encode(w io.Writer, txs []transaction.Transaction) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(constant.CSVHeader + "\n"); err != nil {
		return transaction.NewIOError(err)
	}

	for i := range txs {
		line, err := formatRecord(txs[i])
		if err != nil {
			return err
		}

		if _, err := bw.WriteString(line); err != nil {
			return transaction.NewIOError(err)
		}
	}

	if err := bw.Flush(); err != nil {
		return transaction.NewIOError(err)
	}

	return nil
}

func formatRecord(tx transaction.Transaction) (string, error) {
	typeName, ok := typeNames[tx.Type]
	if !ok {
		return "", transaction.NewFormatError(constant.KeyType, fmt.Sprintf("unknown transaction type %q", tx.Type))
	}

	statusName, ok := statusNames[tx.Status]
	if !ok {
		return "", transaction.NewFormatError(constant.KeyStatus, fmt.Sprintf("unknown transaction status %q", tx.Status))
	}

	if strings.ContainsAny(tx.Description, "\r\n") {
		return "", transaction.NewFormatError(constant.KeyDescription,
			fmt.Sprintf("transaction %d: description contains a line break", tx.ID))
	}

	return fmt.Sprintf("%d,%s,%d,%d,%d,%d,%s,%c%s%c\n",
		tx.ID, typeName, tx.FromUserID, tx.ToUserID, tx.Amount, tx.Timestamp, statusName,
		quote, tx.Description, quote), nil
}
