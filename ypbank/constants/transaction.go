package constant

const (
	// DEPOSIT labels deposit transactions in CSV and text records.
	DEPOSIT = "DEPOSIT"
	// TRANSFER labels transfer transactions in CSV and text records.
	TRANSFER = "TRANSFER"
	// WITHDRAWAL labels withdrawal transactions in CSV and text records.
	WITHDRAWAL = "WITHDRAWAL"

	// SUCCESS labels settled transactions.
	SUCCESS = "SUCCESS"
	// FAILURE labels rejected transactions.
	FAILURE = "FAILURE"
	// PENDING labels transactions still being processed.
	PENDING = "PENDING"

	// ExternalUserID is the FROM_USER_ID used for money entering from outside the bank.
	ExternalUserID uint64 = 0
)
