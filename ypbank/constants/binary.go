package constant

// BinaryMagic opens every record of the binary format.
const BinaryMagic = "YPBN"

// Fixed sizes of the binary record layout, in bytes.
const (
	BinaryMagicSize      = 4
	BinaryBodyLengthSize = 4

	// BinaryFixedBodySize covers id, type, from, to, amount, timestamp,
	// status and the description length prefix.
	BinaryFixedBodySize = 8 + 1 + 8 + 8 + 8 + 8 + 1 + 4
)
