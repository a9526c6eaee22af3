package article

import (
	"strings"
	"time"
)

const (
	isoLayout     = "2006-01-02T15:04:05.000Z"
	displayLayout = "Mon Jan 02 2006"
	invalidDate   = "Invalid Date"
)

var effectiveDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// EffectiveDateStamp holds the machine and human representations of an
// effective date. Both come from the same parsed instant, in UTC.
type EffectiveDateStamp struct {
	DateTime string
	Display  string
	Valid    bool
}

// ParseEffectiveDate parses raw once and derives both representations from the
// result. Unparseable input yields an invalid stamp whose Display is
// "Invalid Date" and whose DateTime is empty.
func ParseEffectiveDate(raw string) EffectiveDateStamp {
	raw = strings.TrimSpace(raw)
	for _, layout := range effectiveDateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		t = t.UTC()
		return EffectiveDateStamp{
			DateTime: t.Format(isoLayout),
			Display:  t.Format(displayLayout),
			Valid:    true,
		}
	}
	return EffectiveDateStamp{Display: invalidDate}
}
