package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
)

// parseRef parses an id field. An empty optional field yields nil.
func parseRef(field, raw string, required bool) (*kernel.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			return nil, errs.NewValueIsRequiredError(field)
		}
		return nil, nil
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	return &id, nil
}

// referenceError turns an unresolved reference into a field keyed input error. Any other
// failure is passed through.
func referenceError(field string, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	return err
}

// parseDeparture accepts RFC 3339 timestamps and requires them to be after now.
func parseDeparture(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errs.NewValueIsRequiredError("departure_time")
	}

	departure, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(
			"departure_time",
			fmt.Errorf("%q is not an RFC 3339 timestamp", raw),
		)
	}
	if !departure.After(now) {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(
			"departure_time",
			fmt.Errorf("%s is not in the future", departure.UTC().Format(time.RFC3339)),
		)
	}
	return departure.UTC(), nil
}

func parseValue(raw string) (kernel.Money, error) {
	if strings.TrimSpace(raw) == "" {
		return kernel.Money{}, errs.NewValueIsRequiredError("value")
	}
	value, err := kernel.ParseMoney(raw)
	if err != nil {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("value", err)
	}
	return value, nil
}
