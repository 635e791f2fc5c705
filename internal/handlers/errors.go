package handlers

import (
	"errors"
	"net/http"

	apperrors "github.com/alphavelocity/moneyclip/internal/errors"
)

// writeError maps typed engine errors to HTTP statuses: malformed input is a
// 400, a well-formed request the ledger cannot satisfy is a 422, anything else
// a 500.
func writeError(w http.ResponseWriter, err error) {
	var (
		validation     *apperrors.ErrValidation
		invalidDecimal *apperrors.ErrInvalidDecimal
		invalidDate    *apperrors.ErrInvalidDate
		unknownSide    *apperrors.ErrUnknownTradeSide
		notConvertible *apperrors.ErrNotConvertible
		invalidRate    *apperrors.ErrInvalidRate
		noLots         *apperrors.ErrNoEligibleLots
		insufficient   *apperrors.ErrInsufficientLots
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validation),
		errors.As(err, &invalidDecimal),
		errors.As(err, &invalidDate),
		errors.As(err, &unknownSide):
		status = http.StatusBadRequest
	case errors.As(err, &notConvertible),
		errors.As(err, &invalidRate),
		errors.As(err, &noLots),
		errors.As(err, &insufficient):
		status = http.StatusUnprocessableEntity
	}

	http.Error(w, err.Error(), status)
}
