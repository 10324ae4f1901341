package validation

import (
	"fmt"

	dErrors "carteira/pkg/domain-errors"
)

// MaxPhotoBytes is the largest photo accepted before decoding.
const MaxPhotoBytes = 5 << 20

// CheckByteSize validates that a payload does not exceed max bytes.
func CheckByteSize(fieldName string, size, max int) error {
	if size > max {
		return dErrors.New(dErrors.CodePayloadTooBig, fmt.Sprintf("%s excede o limite de %d bytes", fieldName, max))
	}
	return nil
}
