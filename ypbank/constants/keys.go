package constant

// Field keys used by the CSV header and the text format.
const (
	KeyID          = "TX_ID"
	KeyType        = "TX_TYPE"
	KeyFromUserID  = "FROM_USER_ID"
	KeyToUserID    = "TO_USER_ID"
	KeyAmount      = "AMOUNT"
	KeyTimestamp   = "TIMESTAMP"
	KeyStatus      = "STATUS"
	KeyDescription = "DESCRIPTION"
)

// RecordKeys lists every record key in serialization order.
var RecordKeys = []string{
	KeyID,
	KeyType,
	KeyFromUserID,
	KeyToUserID,
	KeyAmount,
	KeyTimestamp,
	KeyStatus,
	KeyDescription,
}

// CSVHeader is the first line written by the CSV encoder.
const CSVHeader = "TX_ID,TX_TYPE,FROM_USER_ID,TO_USER_ID,AMOUNT,TIMESTAMP,STATUS,DESCRIPTION"

// CSVFieldCount is the number of columns in a CSV record.
const CSVFieldCount = 8

// TextCommentPrefix starts a comment line in the text format.
const TextCommentPrefix = "#"

// TextKeyValueSeparator splits a text line into key and value.
const TextKeyValueSeparator = ":"
