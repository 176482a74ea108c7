package httpapi

// AccountUpdateRequest is the body of /account/deposit and
// /account/withdraw.
type AccountUpdateRequest struct {
	Signer string `json:"signer"`
	Amount uint64 `json:"amount"`
}

// SendRequest is the body of /account/send.
type SendRequest struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

// BalanceRequest is the body of /balance.
type BalanceRequest struct {
	Signer string `json:"signer"`
}

// maxOrderBodyBytes bounds the /order request body per spec.md §6.
const maxOrderBodyBytes = 16 * 1024
