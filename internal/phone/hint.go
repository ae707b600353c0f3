package phone

import (
	"github.com/nyaruka/phonenumbers"

	"walink/internal/models"
)

// Hint runs the full number through libphonenumber for display purposes.
// It never rejects: an unparseable number yields a zero hint.
func Hint(dialCode, localDigits string) models.PhoneHint {
	full := dialCode + Strip(localDigits)
	num, err := phonenumbers.Parse(full, "")
	if err != nil {
		return models.PhoneHint{}
	}
	return models.PhoneHint{
		E164:   phonenumbers.Format(num, phonenumbers.E164),
		Region: phonenumbers.GetRegionCodeForNumber(num),
		Valid:  phonenumbers.IsValidNumber(num),
	}
}
