package errors

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// maxNameLength bounds series and category names.
const maxNameLength = 256

// ValidateName validates a series or category name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidDataset, "%s name cannot be empty", kind)
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidDataset, "%s name too long (max %d characters)", kind, maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "%s name contains invalid control characters", kind)
		}
	}

	return nil
}

// ValidateChartID validates the identifier of a stored chart.
// IDs are issued as UUIDs, so anything else cannot name a stored chart.
func ValidateChartID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "chart id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid chart id %q", id)
	}
	return nil
}
