package bulk

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/retailpos/backoffice/internal/domain/shared"
)

// ParseFlexibleDecimal parses a numeric cell tolerating both "," and
// "." conventions: "1,500.50", "1500.50" and "1500,50" all yield
// 1500.50. A straight parse is tried first; on failure, commas are
// treated as thousands separators when a dot is also present, otherwise
// as the decimal separator.
func ParseFlexibleDecimal(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero, shared.NewDomainError("VALIDATION_FAILURE", "empty numeric value")
	}

	if parsed, err := decimal.NewFromString(trimmed); err == nil {
		return parsed, nil
	}

	var retry string
	if strings.Contains(trimmed, ",") && strings.Contains(trimmed, ".") {
		retry = strings.ReplaceAll(trimmed, ",", "")
	} else {
		retry = strings.ReplaceAll(trimmed, ",", ".")
	}
	parsed, err := decimal.NewFromString(retry)
	if err != nil {
		return decimal.Zero, shared.NewDomainErrorf("VALIDATION_FAILURE", "invalid number %q", value)
	}
	return parsed, nil
}
