package vouch

import "net/url"

// LogMaskVal replaces sensitive values before they are logged.
const LogMaskVal = "xxxxxx"

// Mask replaces every value set for key in vals with a single LogMaskVal.
// Keys not present in vals are left alone.
func Mask(vals url.Values, key string) {
	if _, ok := vals[key]; !ok {
		return
	}

	vals[key] = []string{LogMaskVal}
}
