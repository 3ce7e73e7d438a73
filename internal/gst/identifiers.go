package gst

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	hsnPattern   = regexp.MustCompile(`^\d{4,8}$`)
)

// otherTerritoryCode is the state code assigned to suppliers outside any state or UT.
const otherTerritoryCode = 97

// ValidGSTIN reports whether s has the 15-character GSTIN shape:
// state code, PAN, entity number, the letter Z and a check character.
func ValidGSTIN(s string) bool {
	return gstinPattern.MatchString(s)
}

// ValidHSN reports whether s is a 4 to 8 digit HSN or SAC code.
func ValidHSN(s string) bool {
	return hsnPattern.MatchString(s)
}

// ValidStateCode reports whether s is a two-digit GST state code.
func ValidStateCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	code, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return (code >= 1 && code <= 38) || code == otherTerritoryCode
}

// CheckGSTINState returns an error when a GSTIN's leading state code
// disagrees with stateCode. Either value being blank passes.
func CheckGSTINState(gstin, stateCode string) error {
	if gstin == "" || stateCode == "" || len(gstin) < 2 {
		return nil
	}
	if gstin[:2] != stateCode {
		return fmt.Errorf("GSTIN prefix %s does not match state code %s", gstin[:2], stateCode)
	}
	return nil
}
