package textformat

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

const quote = `"`

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

// Codec is the text codec value registered by the format package.
type Codec struct{}

// Decode parses a text document.
func (Codec) Decode(r io.Reader) ([]transaction.Transaction, error) {
	return Decode(r)
}

// Encode writes txs as a text document.
func (Codec) Encode(w io.Writer, txs []transaction.Transaction) error {
	return Encode(w, txs)
}

// line is a retained key/value line with its position in the input.
type line struct {
	text   string
	number int
}

// Decode parses blank-line separated blocks of "KEY: value" lines.
func Decode(r io.Reader) ([]transaction.Transaction, error) {
	lr := lines.NewReader(r)

	var (
		txs   []transaction.Transaction
		block []line
	)

	flush := func() error {
		if len(block) == 0 {
			return nil
		}

		tx, err := parseBlock(block)
		if err != nil {
			return err
		}

		txs = append(txs, tx)
		block = block[:0]

		return nil
	}

	for {
		text, number, err := lr.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, transaction.NewIOError(err)
		}

		trimmed := strings.TrimSpace(text)

		switch {
		case trimmed == "":
			if err := flush(); err != nil {
				return nil, err
			}
		case strings.HasPrefix(trimmed, constant.TextCommentPrefix):
			continue
		default:
			block = append(block, line{text: text, number: number})
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return txs, nil
}

// draft accumulates block values before they are validated as a whole.
type draft struct {
	id          *uint64
	txType      *transaction.Type
	fromUserID  *uint64
	toUserID    *uint64
	amount      *int64
	timestamp   *uint64
	status      *transaction.Status
	description *string
}

func parseBlock(block []line) (transaction.Transaction, error) {
	var d draft

	for _, l := range block {
		key, value, ok := strings.Cut(l.text, constant.TextKeyValueSeparator)
		if !ok {
			return transaction.Transaction{}, transaction.NewFormatError("",
				fmt.Sprintf("line %d: expected KEY: value, got %q", l.number, l.text))
		}

		if err := d.set(strings.TrimSpace(key), strings.TrimSpace(value), l.number); err != nil {
			return transaction.Transaction{}, err
		}
	}

	return d.build(block[0].number)
}

func (d *draft) set(key, value string, number int) error {
	switch key {
	case constant.KeyID:
		v, err := parseUint(key, value, number)
		if err != nil {
			return err
		}

		d.id = &v
	case constant.KeyType:
		v, ok := typeLabels[value]
		if !ok {
			return transaction.NewFormatError(key, fmt.Sprintf("line %d: unknown transaction type %q", number, value))
		}

		d.txType = &v
	case constant.KeyFromUserID:
		v, err := parseUint(key, value, number)
		if err != nil {
			return err
		}

		d.fromUserID = &v
	case constant.KeyToUserID:
		v, err := parseUint(key, value, number)
		if err != nil {
			return err
		}

		d.toUserID = &v
	case constant.KeyAmount:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return transaction.NewParseError(key, fmt.Sprintf("line %d: invalid value %q", number, value), err)
		}

		d.amount = &v
	case constant.KeyTimestamp:
		v, err := parseUint(key, value, number)
		if err != nil {
			return err
		}

		d.timestamp = &v
	case constant.KeyStatus:
		v, ok := statusLabels[value]
		if !ok {
			return transaction.NewFormatError(key, fmt.Sprintf("line %d: unknown transaction status %q", number, value))
		}

		d.status = &v
	case constant.KeyDescription:
		v := unquote(value)
		d.description = &v
	}

	return nil
}

// build checks that every key was seen and reports all missing keys at once.
func (d *draft) build(firstLine int) (transaction.Transaction, error) {
	var missing []string

	if d.id == nil {
		missing = append(missing, constant.KeyID)
	}

	if d.txType == nil {
		missing = append(missing, constant.KeyType)
	}

	if d.fromUserID == nil {
		missing = append(missing, constant.KeyFromUserID)
	}

	if d.toUserID == nil {
		missing = append(missing, constant.KeyToUserID)
	}

	if d.amount == nil {
		missing = append(missing, constant.KeyAmount)
	}

	if d.timestamp == nil {
		missing = append(missing, constant.KeyTimestamp)
	}

	if d.status == nil {
		missing = append(missing, constant.KeyStatus)
	}

	if d.description == nil {
		missing = append(missing, constant.KeyDescription)
	}

	if len(missing) > 0 {
		return transaction.Transaction{}, transaction.NewFormatError(missing[0],
			fmt.Sprintf("record starting at line %d is missing %s", firstLine, strings.Join(missing, ", ")))
	}

	return transaction.Transaction{
		ID:          *d.id,
		Type:        *d.txType,
		FromUserID:  *d.fromUserID,
		ToUserID:    *d.toUserID,
		Amount:      *d.amount,
		Timestamp:   *d.timestamp,
		Status:      *d.status,
		Description: *d.description,
	}, nil
}

func parseUint(key, value string, number int) (uint64, error) {
	v, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, transaction.NewParseError(key, fmt.Sprintf("line %d: invalid value %q", number, value), err)
	}

	return v, nil
}

// unquote strips one layer of surrounding double quotes.
func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, quote) && strings.HasSuffix(s, quote) {
		return s[1 : len(s)-1]
	}

	return s
}

// Encode writes one commented block per transaction, each followed by a blank line.
func Encode(w io.Writer, txs []transaction.Transaction) error {
	bw := bufio.NewWriter(w)

	for i := range txs {
		block, err := formatBlock(i+1, txs[i])
		if err != nil {
			return err
		}

		if _, err := bw.WriteString(block); err != nil {
			return transaction.NewIOError(err)
		}
	}

	if err := bw.Flush(); err != nil {
		return transaction.NewIOError(err)
	}

	return nil
}

func formatBlock(index int, tx transaction.Transaction) (string, error) {
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

	var b strings.Builder

	fmt.Fprintf(&b, "%s Record %d\n", constant.TextCommentPrefix, index)
	values := map[string]string{
		constant.KeyID:          strconv.FormatUint(tx.ID, 10),
		constant.KeyType:        typeName,
		constant.KeyFromUserID:  strconv.FormatUint(tx.FromUserID, 10),
		constant.KeyToUserID:    strconv.FormatUint(tx.ToUserID, 10),
		constant.KeyAmount:      strconv.FormatInt(tx.Amount, 10),
		constant.KeyTimestamp:   strconv.FormatUint(tx.Timestamp, 10),
		constant.KeyStatus:      statusName,
		constant.KeyDescription: quote + tx.Description + quote,
	}

	for _, key := range constant.RecordKeys {
		fmt.Fprintf(&b, "%s%s %s\n", key, constant.TextKeyValueSeparator, values[key])
	}

	b.WriteString("\n")

	return b.String(), nil
}
