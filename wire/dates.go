package wire

import "time"

// dateLayout and dateTimeLayout match RFC 3501's "dd-MMM-yyyy" and
// "dd-MMM-yyyy HH:MM:SS ±hhmm" grammar, three-letter English month
// abbreviations.
const (
	dateLayout     = "02-Jan-2006"
	dateTimeLayout = "02-Jan-2006 15:04:05 -0700"
)

// WriteDate writes a SEARCH-style date as a quoted "dd-MMM-yyyy" string.
func WriteDate(b *EncodeBuffer, t time.Time) int {
	return b.WriteQuotedString(t.Format(dateLayout))
}

// WriteDateTime writes an INTERNALDATE-style "dd-MMM-yyyy HH:MM:SS ±hhmm"
// quoted string.
func WriteDateTime(b *EncodeBuffer, t time.Time) int {
	return b.WriteQuotedString(t.Format(dateTimeLayout))
}
