package oracle

import "strings"

// Category is the closed set of intents the dialogue branches on.
type Category int

const (
	CategoryUnrecognized Category = iota
	CategoryVitalSign
	CategoryPersonalInfo
	CategoryMedicalComplaint
	CategoryGeneralInquiry
)

var categoryNames = map[Category]string{
	CategoryVitalSign:        "Vital sign input",
	CategoryPersonalInfo:     "Personal information supply",
	CategoryMedicalComplaint: "Medical complaint",
	CategoryGeneralInquiry:   "General inquiry",
	CategoryUnrecognized:     "Unknown",
}

func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return "Unknown"
}

// ParseCategory maps the classifier's free-text answer onto a Category.
// It tolerates case, a leading list number, a "Category:" prefix and
// surrounding punctuation. Anything else is CategoryUnrecognized.
func ParseCategory(raw string) Category {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "category:")
	s = strings.TrimLeft(s, "0123456789.) \t")
	s = strings.Trim(s, " \t\r\n.*\"'`")
	for c, name := range categoryNames {
		if c == CategoryUnrecognized {
			continue
		}
		if s == strings.ToLower(name) {
			return c
		}
	}
	return CategoryUnrecognized
}
