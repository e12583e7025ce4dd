package domain

const (
	AccountTypeIndividual = "INDIVIDUAL"
	AccountTypeFamily     = "FAMILY"
	AccountTypeBusiness   = "BUSINESS"
	AccountTypeAdmin      = "ADMIN"
)

const (
	TxStatusPending   = "PENDING"
	TxStatusMapped    = "MAPPED"
	TxStatusCompleted = "COMPLETED"
	TxStatusFailed    = "FAILED"
)

const (
	MappingStatusPending  = "PENDING"
	MappingStatusApproved = "APPROVED"
)

// Where a mapping row came from. Confirmation rows are appended by the
// mapping engine every time a transaction matches; the log is never pruned.
const (
	MappingSourceSeed      = "SEED"
	MappingSourceConfirmed = "CONFIRMED"
	MappingSourceSuggested = "LLM_SUGGESTED"
	MappingSourceUser      = "USER"
)

const (
	NotificationTypeSync       = "SYNC"
	NotificationTypeInvestment = "INVESTMENT"
	NotificationTypeMember     = "MEMBER"
	NotificationTypeGoal       = "GOAL"
)

const (
	MemberRoleOwner  = "OWNER"
	MemberRoleMember = "MEMBER"
)

// Admin-configurable setting keys.
const (
	SettingSyncMinTransactions = "sync_min_transactions"
	SettingSyncMaxTransactions = "sync_max_transactions"
	SettingDefaultRoundUp      = "default_round_up_amount"
)

// Round-up step options in dollars.
var RoundUpAmounts = []float64{0.50, 1.00, 2.00, 5.00}

// AccountNumberPrefix returns the one-letter tenant prefix used in generated
// account numbers. Individual is the default for anything unrecognized.
func AccountNumberPrefix(accountType string) string {
	switch accountType {
	case AccountTypeFamily:
		return "F"
	case AccountTypeBusiness:
		return "B"
	case AccountTypeAdmin:
		return "A"
	default:
		return "I"
	}
}
