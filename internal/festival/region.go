package festival

import "strings"

// OtherRegion is the display token for festivals without a usable region.
const OtherRegion = "기타"

// ExtractRegion returns the short display region of an address or region string:
// its first whitespace-delimited token ("경상북도 영양군" → "경상북도").
// The MCST region field already starts with the province or metropolitan city,
// so no dictionary lookup is needed.
func ExtractRegion(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return OtherRegion
	}
	return fields[0]
}
