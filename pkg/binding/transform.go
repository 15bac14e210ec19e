package binding

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/goliatone/go-pagegen/pkg/document"
	"github.com/goliatone/go-pagegen/pkg/expression"
)

// Transform formats.
const (
	FormatUppercase  = "uppercase"
	FormatLowercase  = "lowercase"
	FormatCapitalize = "capitalize"
	FormatNumber     = "number"
	FormatCurrency   = "currency"
	FormatDate       = "date"
	FormatDatetime   = "datetime"
)

// Formats lists the supported transform formats.
var Formats = document.Enum{
	FormatUppercase, FormatLowercase, FormatCapitalize, FormatNumber,
	FormatCurrency, FormatDate, FormatDatetime,
}

// transform runs the fixed pipeline: format, prefix, suffix, default.
func (r *Resolver) transform(value any, t document.Transform) any {
	if format := strings.TrimSpace(t.Format); format != "" && value != nil {
		value = r.format(value, format, t)
	}
	if value != nil && t.Prefix != "" {
		value = t.Prefix + expression.ToString(value)
	}
	if value != nil && t.Suffix != "" {
		value = expression.ToString(value) + t.Suffix
	}
	if value == nil && t.DefaultValue != nil {
		value = t.DefaultValue
	}
	return value
}

func (r *Resolver) format(value any, format string, t document.Transform) any {
	switch format {
	case FormatUppercase:
		return strings.ToUpper(expression.ToString(value))
	case FormatLowercase:
		return strings.ToLower(expression.ToString(value))
	case FormatCapitalize:
		return capitalize(expression.ToString(value))
	case FormatNumber:
		number, ok := expression.ToNumber(value)
		if !ok {
			return nil
		}
		return number
	case FormatCurrency:
		number, ok := expression.ToNumber(value)
		if !ok {
			return value
		}
		return r.formatCurrency(number, pick(t.Locale, r.locale), pick(t.Currency, r.currency))
	case FormatDate, FormatDatetime:
		moment, ok := toTime(value)
		if !ok {
			return value
		}
		return formatTime(moment, pick(t.Locale, r.locale), format == FormatDatetime)
	default:
		r.logger.Debug("unknown transform format", "format", format)
		return value
	}
}

func pick(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func capitalize(text string) string {
	first, size := utf8.DecodeRuneInString(text)
	if first == utf8.RuneError {
		return text
	}
	return string(unicode.ToUpper(first)) + text[size:]
}

func (r *Resolver) formatCurrency(amount float64, locale, code string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		r.logger.Debug("invalid locale, using default", "locale", locale)
		tag = language.AmericanEnglish
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		r.logger.Debug("invalid currency, using default", "currency", code)
		unit = currency.USD
	}
	printer := message.NewPrinter(tag)
	scale, _ := currency.Standard.Rounding(unit)
	digits := printer.Sprint(number.Decimal(amount, number.Scale(scale)))
	symbol := printer.Sprint(currency.Symbol(unit))

	base, _ := tag.Base()
	if trailingSymbol[base.String()] {
		return digits + " " + symbol
	}
	return symbol + digits
}

// Languages that write the currency symbol after the amount.
var trailingSymbol = map[string]bool{
	"cs": true, "da": true, "de": true, "es": true, "fi": true, "fr": true,
	"it": true, "nb": true, "pl": true, "ru": true, "sv": true,
}

type dateLayouts struct {
	date     string
	datetime string
}

var localeLayouts = map[string]dateLayouts{
	"en-US": {date: "1/2/2006", datetime: "1/2/2006, 3:04:05 PM"},
	"en-GB": {date: "02/01/2006", datetime: "02/01/2006, 15:04:05"},
	"de-DE": {date: "2.1.2006", datetime: "2.1.2006, 15:04:05"},
	"fr-FR": {date: "02/01/2006", datetime: "02/01/2006 15:04:05"},
	"es-ES": {date: "2/1/2006", datetime: "2/1/2006, 15:04:05"},
	"ja-JP": {date: "2006/1/2", datetime: "2006/1/2 15:04:05"},
}

var isoLayouts = dateLayouts{date: "2006-01-02", datetime: "2006-01-02 15:04:05"}

func formatTime(moment time.Time, locale string, withTime bool) string {
	layouts, ok := localeLayouts[locale]
	if !ok {
		base, _, _ := strings.Cut(locale, "-")
		layouts, ok = localeLayouts[canonicalLocale(base)]
	}
	if !ok {
		layouts = isoLayouts
	}
	if withTime {
		return moment.Format(layouts.datetime)
	}
	return moment.Format(layouts.date)
}

// canonicalLocale maps a bare language to the region used for its layouts.
func canonicalLocale(lang string) string {
	switch strings.ToLower(lang) {
	case "en":
		return "en-US"
	case "de":
		return "de-DE"
	case "fr":
		return "fr-FR"
	case "es":
		return "es-ES"
	case "ja":
		return "ja-JP"
	}
	return lang
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// toTime accepts time values, RFC3339 or ISO date strings and Unix
// millisecond timestamps.
func toTime(value any) (time.Time, bool) {
	switch typed := value.(type) {
	case time.Time:
		return typed, true
	case *time.Time:
		if typed == nil {
			return time.Time{}, false
		}
		return *typed, true
	case string:
		trimmed := strings.TrimSpace(typed)
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return parsed, true
			}
		}
		if millis, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return time.UnixMilli(millis).UTC(), true
		}
		return time.Time{}, false
	}
	if number, ok := document.AsNumber(value); ok {
		return time.UnixMilli(int64(number)).UTC(), true
	}
	return time.Time{}, false
}
