package domain

import "time"

// TimestampLayout is the single textual format every entity timestamp uses,
// e.g. "2021-08-01 00:00:00.000+0000". Format validity is an entity invariant
// checked at construction and on every mutation.
const TimestampLayout = "2006-01-02 15:04:05.000-0700"

// NowTimestamp returns the current UTC instant in the canonical layout.
func NowTimestamp() string {
	return time.Now().UTC().Format(TimestampLayout)
}

// assertTimestampFormat fails with an Invalid error when the value does not
// parse under the canonical layout.
func assertTimestampFormat(value string) error {
	if _, err := time.Parse(TimestampLayout, value); err != nil {
		return Invalidf("timestamp %q is not in the %q format", value, TimestampLayout)
	}
	return nil
}
