// pkg/resolver/tables.go
package resolver

// The legacy export has no stable client foreign key. Three alias
// tables, built from years of inconsistent human entry, carry the
// mapping to canonical client ids. Keys are stored in canonical form
// (lowercased, diacritics stripped, whitespace collapsed).

// nameAliases maps free-text client names, including punctuation and
// casing variants, to canonical client ids.
var nameAliases = map[string]string{
	"caseengine":             "case-engine",
	"case engine":            "case-engine",
	"case-engine":            "case-engine",
	"school of mentors":      "school-of-mentors",
	"the school of mentors":  "school-of-mentors",
	"som":                    "school-of-mentors",
	"joel/isaac":             "joel-isaac",
	"joel / isaac":           "joel-isaac",
	"joel & isaac":           "joel-isaac",
	"bright path dental":     "bright-path-dental",
	"brightpath dental":      "bright-path-dental",
	"bright path":            "bright-path-dental",
	"summit realty":          "summit-realty",
	"summit realty group":    "summit-realty",
	"harbor law":             "harbor-law",
	"harbor law, pllc":       "harbor-law",
	"northwind hvac":         "northwind-hvac",
	"northwind heating & air": "northwind-hvac",
	"velocity fitness":       "velocity-fitness",
	"redline towing":         "redline-towing",
}

// dropdownAliases maps exact "Client (drop down)" strings. An empty id
// is a deliberate no-match: known historical or one-off clients whose
// rows must go to manual stub review instead of silently merging into
// an active client. Do not "fix" these to auto-resolve.
var dropdownAliases = map[string]string{
	"caseengine - cyle p":         "case-engine",
	"case engine - cyle p":        "case-engine",
	"school of mentors - marcus":  "school-of-mentors",
	"summit realty - listings":    "summit-realty",
	"northwind - service dept":    "northwind-hvac",
	"legacy - thomas web rebuild": "",
	"one-off - misc 2021":         "",
	"archived - delta consulting": "",
}

// titleAliases maps historical and person-name phrases left after title
// cleaning. Least reliable table; consulted last.
var titleAliases = map[string]string{
	"cyle":      "case-engine",
	"cyle p":    "case-engine",
	"marcus":    "school-of-mentors",
	"joel":      "joel-isaac",
	"isaac":     "joel-isaac",
	"dr patel":  "bright-path-dental",
	"dr. patel": "bright-path-dental",
	"kendra":    "velocity-fitness",
}
