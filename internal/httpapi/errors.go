package httpapi

import (
	"errors"
	"net/http"

	"bourse/internal/ledger"
	"bourse/internal/platform"
)

// statusFor renders an engine error as the HTTP status spec.md §7
// requires ("a non-200 response whose body identifies the failing
// account and, where applicable, the offending amount"). The body text
// itself is just err.Error() — ledger.Error already formats the account
// and amount, per SPEC_FULL.md's ambient error-handling section.
func statusFor(err error) int {
	var ledgerErr *ledger.Error
	if errors.As(err, &ledgerErr) {
		switch ledgerErr.Kind {
		case ledger.AccountNotFound:
			return http.StatusNotFound
		case ledger.AccountUnderFunded, ledger.AccountOverFunded:
			return http.StatusConflict
		}
	}
	if errors.Is(err, platform.ErrInvalidOrder) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusFor(err))
}
