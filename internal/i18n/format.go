package i18n

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"fintrack/internal/core"
)

var printers = map[Lang]*message.Printer{
	English:    message.NewPrinter(language.AmericanEnglish),
	Portuguese: message.NewPrinter(language.BrazilianPortuguese),
}

// FormatCents renders cents as a grouped two-decimal number in the locale's
// convention: 123456 -> "1,234.56" (en) or "1.234,56" (pt). No currency
// symbol is included; see Symbol.
func FormatCents(lang Lang, m core.Money) string {
	p, ok := printers[lang]
	if !ok {
		p = printers[Default]
	}
	return p.Sprint(number.Decimal(m.Float(),
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Symbol returns the locale's currency symbol.
func Symbol(lang Lang) string {
	return T(lang, "currency_symbol")
}

// decimalSep returns the locale's decimal separator.
func decimalSep(lang Lang) byte {
	if lang == Portuguese {
		return ','
	}
	return '.'
}

// ParseAmount reads user input as a monetary amount under the locale's
// separator convention. Grouping separators are stripped; the decimal
// separator is whichever of '.' or ',' appears last, except that a lone
// locale-grouping separator followed by exactly three digits is treated as
// grouping ("1,234" is 1234 dollars in English). A currency symbol prefix is
// tolerated. Invalid input yields core.ErrInvalidAmount rather than a silent
// non-finite value.
func ParseAmount(lang Lang, s string) (core.Money, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimLeft(s, "+-")
	s = strings.TrimPrefix(s, Symbol(lang))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")

	var seps []int
	for i := 0; i < len(s); i++ {
		if s[i] == '.' || s[i] == ',' {
			seps = append(seps, i)
		}
	}
	if neg {
		s = "-" + s
		for i := range seps {
			seps[i]++
		}
	}
	if len(seps) == 0 {
		return core.ParseCents(s)
	}

	last := seps[len(seps)-1]
	mixed := false
	for _, i := range seps[:len(seps)-1] {
		if s[i] != s[last] {
			mixed = true
		}
	}
	grouping := byte(',')
	if decimalSep(lang) == ',' {
		grouping = '.'
	}
	// The last separator is the decimal point unless it looks like grouping.
	isDecimal := mixed || !(s[last] == grouping && len(s)-last-1 == 3)

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] != '.' && s[i] != ',':
			b.WriteByte(s[i])
		case i == last && isDecimal:
			b.WriteByte('.')
		}
	}
	return core.ParseCents(b.String())
}

var ptMonths = [...]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// FormatTime renders a timestamp as a short human date in the locale.
func FormatTime(lang Lang, t time.Time) string {
	if lang == Portuguese {
		return fmt.Sprintf("%d de %s de %d", t.Day(), ptMonths[t.Month()-1], t.Year())
	}
	return t.Format("Jan 2, 2006")
}

// FormatDate renders a date string (RFC3339 or 2006-01-02) as a short human
// date. An empty value renders as an em dash; an unparseable value is
// returned verbatim for the template layer to escape.
func FormatDate(lang Lang, s string) string {
	if s == "" {
		return "—"
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse(core.DeadlineLayout, s)
	}
	if err != nil {
		return s
	}
	return FormatTime(lang, t)
}
