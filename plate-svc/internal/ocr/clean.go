package ocr

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	separators = regexp.MustCompile(`[\n\r,;|•·]+`)
	timeStamp  = regexp.MustCompile(`(?i)\b\d{1,2}(?:[:.]\d{2})?\s*(?:(?:am|pm)\b|[ap]\.m\.)|\b\d{1,2}[:.]\d{2}\b`)
	nonAlpha   = regexp.MustCompile(`[^A-Za-z\s]+`)
	spaces     = regexp.MustCompile(`\s+`)
	apostrophe = strings.NewReplacer("'", "", "’", "")
)

// Header words that OCR picks up from printed menus. A line made up only of
// these is dropped.
var blacklist = map[string]struct{}{
	"menu": {}, "menus": {}, "breakfast": {}, "lunch": {}, "dinner": {}, "snack": {}, "snacks": {},
	"today": {}, "todays": {}, "special": {}, "specials": {}, "of": {}, "the": {}, "day": {},
	"am": {}, "pm": {}, "to": {}, "from": {}, "timing": {}, "timings": {}, "time": {},
	"price": {}, "rs": {}, "inr": {}, "only": {}, "mess": {}, "canteen": {}, "cafeteria": {},
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {}, "friday": {}, "saturday": {}, "sunday": {},
	"mon": {}, "tue": {}, "wed": {}, "thu": {}, "fri": {}, "sat": {}, "sun": {},
}

const minLetters = 3

// CleanMenuText splits raw OCR output into candidate item names. Time stamps,
// digits and punctuation are stripped, header lines and fragments shorter
// than three letters are dropped, names are title-cased and duplicates
// removed keeping the first occurrence.
func CleanMenuText(text string) []string {
	items := []string{}
	seen := map[string]struct{}{}

	for _, line := range separators.Split(text, -1) {
		line = timeStamp.ReplaceAllString(line, " ")
		line = apostrophe.Replace(line)
		line = nonAlpha.ReplaceAllString(line, " ")
		line = strings.TrimSpace(spaces.ReplaceAllString(line, " "))
		if countLetters(line) < minLetters || isHeader(line) {
			continue
		}
		key := strings.ToLower(line)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, titleCase(line))
	}
	return items
}

func countLetters(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

func isHeader(line string) bool {
	for _, word := range strings.Fields(strings.ToLower(line)) {
		if _, ok := blacklist[word]; !ok {
			return false
		}
	}
	return true
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
