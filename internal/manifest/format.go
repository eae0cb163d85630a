package manifest

import (
	"time"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// locale holds the date and time layouts of one language. Go's time package
// only knows English month and day names, so other languages use numeric dates.
type locale struct {
	date map[config.FormatStyle]string
	time map[config.FormatStyle]string
	// sep joins date and time; longSep is used after full and long dates.
	sep, longSep string
}

var clock24 = map[config.FormatStyle]string{
	config.StyleFull:   "15:04:05 MST",
	config.StyleLong:   "15:04:05 MST",
	config.StyleMedium: "15:04:05",
	config.StyleShort:  "15:04",
}

func numericLocale(long, short string) locale {
	return locale{
		date: map[config.FormatStyle]string{
			config.StyleFull:   long,
			config.StyleLong:   long,
			config.StyleMedium: long,
			config.StyleShort:  short,
		},
		time: clock24,
		sep:  " ", longSep: " ",
	}
}

var (
	enUS = locale{
		date: map[config.FormatStyle]string{
			config.StyleFull:   "Monday, January 2, 2006",
			config.StyleLong:   "January 2, 2006",
			config.StyleMedium: "Jan 2, 2006",
			config.StyleShort:  "1/2/06",
		},
		time: map[config.FormatStyle]string{
			config.StyleFull:   "3:04:05 PM MST",
			config.StyleLong:   "3:04:05 PM MST",
			config.StyleMedium: "3:04:05 PM",
			config.StyleShort:  "3:04 PM",
		},
		sep: ", ", longSep: " at ",
	}
	enGB = locale{
		date: map[config.FormatStyle]string{
			config.StyleFull:   "Monday 2 January 2006",
			config.StyleLong:   "2 January 2006",
			config.StyleMedium: "2 Jan 2006",
			config.StyleShort:  "02/01/2006",
		},
		time: clock24,
		sep:  ", ", longSep: " at ",
	}
	isoLocale = numericLocale("2006-01-02", "2006-01-02")

	// Keyed by base language.
	locales = map[string]locale{
		"de": numericLocale("02.01.2006", "02.01.06"),
		"fr": numericLocale("02/01/2006", "02/01/2006"),
		"es": numericLocale("02/01/2006", "2/1/06"),
		"it": numericLocale("02/01/2006", "02/01/06"),
		"pt": numericLocale("02/01/2006", "02/01/2006"),
		"nl": numericLocale("02-01-2006", "02-01-2006"),
		"nb": numericLocale("02.01.2006", "02.01.2006"),
		"sv": numericLocale("2006-01-02", "2006-01-02"),
		"zh": numericLocale("2006/1/2", "2006/1/2"),
		"ja": numericLocale("2006/01/02", "2006/01/02"),
		"ko": numericLocale("2006. 1. 2.", "06. 1. 2."),
	}
)

var englishDayFirst = map[string]bool{"GB": true, "IE": true, "AU": true, "NZ": true, "IN": true, "ZA": true}

func localeFor(lang string) locale {
	if lang == "" {
		return enUS
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return enUS
	}
	base, _ := tag.Base()
	if base.String() == "en" {
		region, _ := tag.Region()
		if englishDayFirst[region.String()] {
			return enGB
		}
		return enUS
	}
	if l, ok := locales[base.String()]; ok {
		return l
	}
	return isoLocale
}

// FormatTime renders t with the date and time presets of lang. An empty or
// unparsable lang uses en-US. An empty style omits that part; when both are
// empty the medium date is used.
func FormatTime(t time.Time, lang string, dateStyle, timeStyle config.FormatStyle) string {
	loc := localeFor(lang)
	date, hasDate := loc.date[dateStyle]
	clock, hasTime := loc.time[timeStyle]
	switch {
	case hasDate && hasTime:
		sep := loc.sep
		if dateStyle == config.StyleFull || dateStyle == config.StyleLong {
			sep = loc.longSep
		}
		return t.Format(date) + sep + t.Format(clock)
	case hasDate:
		return t.Format(date)
	case hasTime:
		return t.Format(clock)
	default:
		return t.Format(loc.date[config.StyleMedium])
	}
}
