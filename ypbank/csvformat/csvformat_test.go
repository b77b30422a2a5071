package csvformat

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	constant "github.com/LerianStudio/lib-ypbank/ypbank/constants"
	"github.com/LerianStudio/lib-ypbank/ypbank/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "TX_ID,TX_TYPE,FROM_USER_ID,TO_USER_ID,AMOUNT,TIMESTAMP,STATUS,DESCRIPTION\n"

func sampleTransactions() []transaction.Transaction {
	return []transaction.Transaction{
		{
			ID:          1001,
			Type:        transaction.TypeDeposit,
			FromUserID:  0,
			ToUserID:    501,
			Amount:      50000,
			Timestamp:   1672531200000,
			Status:      transaction.StatusSuccess,
			Description: "Initial funding",
		},
		{
			ID:          1002,
			Type:        transaction.TypeTransfer,
			FromUserID:  501,
			ToUserID:    502,
			Amount:      -1500,
			Timestamp:   1672531260000,
			Status:      transaction.StatusPending,
			Description: `Rent, "March", split 50/50`,
		},
		{
			ID:          1003,
			Type:        transaction.TypeWithdrawal,
			FromUserID:  502,
			ToUserID:    0,
			Amount:      700,
			Timestamp:   1672531320000,
			Status:      transaction.StatusFailure,
			Description: "",
		},
		{
			ID:          1004,
			Type:        transaction.TypeTransfer,
			FromUserID:  1,
			ToUserID:    2,
			Amount:      3,
			Timestamp:   4,
			Status:      transaction.StatusSuccess,
			Description: `  odd " quote, and padding  `,
		},
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	txs := sampleTransactions()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, txs))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, txs, decoded)
}

func TestCodecValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Codec{}.Encode(&buf, sampleTransactions()))

	decoded, err := Codec{}.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleTransactions(), decoded)
}

func TestEncodeOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleTransactions()[:2]))

	expected := header +
		"1001,DEPOSIT,0,501,50000,1672531200000,SUCCESS,\"Initial funding\"\n" +
		"1002,TRANSFER,501,502,-1500,1672531260000,PENDING,\"Rent, \"March\", split 50/50\"\n"

	assert.Equal(t, expected, buf.String())
}

func TestEncodeEmptyWritesHeaderOnly(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil))
	assert.Equal(t, header, buf.String())
}

func TestDecodeDescriptionWithComma(t *testing.T) {
	t.Parallel()

	data := header + `1,DEPOSIT,0,2,100,1633036800000,SUCCESS,"Pay, with comma"`

	txs, err := Decode(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Pay, with comma", txs[0].Description)
	assert.Equal(t, uint64(1633036800000), txs[0].Timestamp)
}

func TestDecodeTolerance(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		description string
	}{
		{name: "crlf line endings", input: "H\r\n1,DEPOSIT,0,2,100,5,SUCCESS,\"x\"\r\n", description: "x"},
		{name: "blank lines skipped", input: "H\n\n   \n1,DEPOSIT,0,2,100,5,SUCCESS,\"x\"\n\n", description: "x"},
		{name: "whitespace around fields", input: "H\n 1 , DEPOSIT ,0, 2,100 ,5, SUCCESS , \"x\" \n", description: "x"},
		{name: "unquoted description", input: "H\n1,DEPOSIT,0,2,100,5,SUCCESS,plain text\n", description: "plain text"},
		{name: "unquoted description with comma", input: "H\n1,DEPOSIT,0,2,100,5,SUCCESS,a,b\n", description: "a,b"},
		{name: "header content ignored", input: "whatever,goes\n1,DEPOSIT,0,2,100,5,SUCCESS,\"x\"", description: "x"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			txs, err := Decode(strings.NewReader(tt.input))
			require.NoError(t, err)
			require.Len(t, txs, 1)
			assert.Equal(t, uint64(1), txs[0].ID)
			assert.Equal(t, transaction.TypeDeposit, txs[0].Type)
			assert.Equal(t, transaction.StatusSuccess, txs[0].Status)
			assert.Equal(t, tt.description, txs[0].Description)
		})
	}
}

func TestDecodeEmptyInputs(t *testing.T) {
	for _, input := range []string{"", header, header + "\n\n"} {
		txs, err := Decode(strings.NewReader(input))
		require.NoError(t, err)
		assert.Empty(t, txs)
	}
}

func TestDecodeMissingFields(t *testing.T) {
	t.Parallel()

	txs, err := Decode(strings.NewReader("TX_ID,TX_TYPE\n1001,DEPOSIT"))
	require.Error(t, err)
	assert.Nil(t, txs)
	assert.ErrorIs(t, err, transaction.ErrFormat)
	assert.Contains(t, err.Error(), "1001,DEPOSIT")
	assert.Contains(t, err.Error(), "line 2")
}

func TestDecodeQuotedCommasDoNotCountAsSeparators(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(header + `1,DEPOSIT,0,2,"100,5,SUCCESS,x"`))
	require.Error(t, err)
	assert.ErrorIs(t, err, transaction.ErrFormat)
}

func TestDecodeQuotedLeadingColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
	}{
		{name: "every column quoted", line: `"1001","DEPOSIT","0","501","50000","1672531200000","SUCCESS","Initial funding"`},
		{name: "id and type quoted", line: `"1001","DEPOSIT",0,501,50000,1672531200000,SUCCESS,"Initial funding"`},
		{name: "quoted with padding", line: `" 1001 ", "DEPOSIT" ,0,501,50000,1672531200000, SUCCESS ,"Initial funding"`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			txs, err := Decode(strings.NewReader(header + tt.line + "\n"))
			require.NoError(t, err)
			assert.Equal(t, sampleTransactions()[:1], txs)
		})
	}
}

func TestDecodeQuotedNumberStillValidated(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(header + `"10x1",DEPOSIT,0,501,50000,1672531200000,SUCCESS,"d"` + "\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, transaction.ErrParse)
	assert.Contains(t, err.Error(), `"10x1"`)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		sentinel error
		field    string
	}{
		{name: "bad id", line: `x,DEPOSIT,0,2,100,5,SUCCESS,"d"`, sentinel: transaction.ErrParse, field: constant.KeyID},
		{name: "negative id", line: `-1,DEPOSIT,0,2,100,5,SUCCESS,"d"`, sentinel: transaction.ErrParse, field: constant.KeyID},
		{name: "bad from", line: `1,DEPOSIT,a,2,100,5,SUCCESS,"d"`, sentinel: transaction.ErrParse, field: constant.KeyFromUserID},
		{name: "bad to", line: `1,DEPOSIT,0,b,100,5,SUCCESS,"d"`, sentinel: transaction.ErrParse, field: constant.KeyToUserID},
		{name: "bad amount", line: `1,DEPOSIT,0,2,1.5,5,SUCCESS,"d"`, sentinel: transaction.ErrParse, field: constant.KeyAmount},
		{name: "bad timestamp", line: `1,DEPOSIT,0,2,100,soon,SUCCESS,"d"`, sentinel: transaction.ErrParse, field: constant.KeyTimestamp},
		{name: "unknown type", line: `1,REFUND,0,2,100,5,SUCCESS,"d"`, sentinel: transaction.ErrFormat, field: constant.KeyType},
		{name: "lowercase type", line: `1,deposit,0,2,100,5,SUCCESS,"d"`, sentinel: transaction.ErrFormat, field: constant.KeyType},
		{name: "unknown status", line: `1,DEPOSIT,0,2,100,5,DONE,"d"`, sentinel: transaction.ErrFormat, field: constant.KeyStatus},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			txs, err := Decode(strings.NewReader(header + tt.line + "\n"))
			require.Error(t, err)
			assert.Nil(t, txs)
			assert.ErrorIs(t, err, tt.sentinel)

			var codecErr *transaction.Error
			require.True(t, errors.As(err, &codecErr))
			assert.Equal(t, tt.field, codecErr.Field)
		})
	}
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{name: "single field", line: "a", expected: []string{"a"}},
		{name: "plain", line: "a,b,c", expected: []string{"a", "b", "c"}},
		{name: "quoted comma", line: `a,"b,c",d`, expected: []string{"a", `"b,c"`, "d"}},
		{name: "empty fields", line: ",,", expected: []string{"", "", ""}},
		{
			name:     "rest after seventh separator",
			line:     `1,2,3,4,5,6,7,8,9,"10"`,
			expected: []string{"1", "2", "3", "4", "5", "6", "7", `8,9,"10"`},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, SplitLine(tt.line))
		})
	}
}

func TestEncodeRejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(tx *transaction.Transaction)
		field  string
	}{
		{name: "unknown type", mutate: func(tx *transaction.Transaction) { tx.Type = "" }, field: constant.KeyType},
		{name: "unknown status", mutate: func(tx *transaction.Transaction) { tx.Status = "LOST" }, field: constant.KeyStatus},
		{name: "newline", mutate: func(tx *transaction.Transaction) { tx.Description = "a\nb" }, field: constant.KeyDescription},
		{name: "carriage return", mutate: func(tx *transaction.Transaction) { tx.Description = "a\rb" }, field: constant.KeyDescription},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tx := sampleTransactions()[0]
			tt.mutate(&tx)

			err := Encode(&bytes.Buffer{}, []transaction.Transaction{tx})
			require.Error(t, err)
			assert.ErrorIs(t, err, transaction.ErrFormat)

			var codecErr *transaction.Error
			require.True(t, errors.As(err, &codecErr))
			assert.Equal(t, tt.field, codecErr.Field)
		})
	}
}
