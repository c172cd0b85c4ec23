package geo

import (
	"strings"
)

// TableClassifier resolves countries against a bundled offline table,
// with normalization and alias handling for historical and variant
// display names.
type TableClassifier struct {
	byName map[string]Continent
}

// NewTableClassifier builds the bundled classifier.
func NewTableClassifier() *TableClassifier {
	byName := make(map[string]Continent, len(continentTable)+len(aliasTable))
	for name, continent := range continentTable {
		byName[normalizeCountry(name)] = continent
	}
	for alias, canonical := range aliasTable {
		if continent, ok := byName[normalizeCountry(canonical)]; ok {
			byName[normalizeCountry(alias)] = continent
		}
	}
	return &TableClassifier{byName: byName}
}

// ContinentOf implements Classifier. Unresolvable names yield the
// ContinentUnknown sentinel, never an error.
func (t *TableClassifier) ContinentOf(country string) Continent {
	if continent, ok := t.byName[normalizeCountry(country)]; ok {
		return continent
	}
	return ContinentUnknown
}

// normalizeCountry lowercases, trims, collapses whitespace, and strips
// punctuation that varies between data sources.
func normalizeCountry(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "&", "and")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, "’", "")
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// continentTable is the bundled country→continent mapping, keyed by
// canonical display name.
var continentTable = map[string]Continent{
	// Africa
	"Algeria": Africa, "Angola": Africa, "Benin": Africa, "Botswana": Africa,
	"Burkina Faso": Africa, "Burundi": Africa, "Cabo Verde": Africa,
	"Cameroon": Africa, "Central African Republic": Africa, "Chad": Africa,
	"Comoros": Africa, "Congo": Africa,
	"Democratic Republic of the Congo": Africa, "Cote d'Ivoire": Africa,
	"Djibouti": Africa, "Egypt": Africa, "Equatorial Guinea": Africa,
	"Eritrea": Africa, "Eswatini": Africa, "Ethiopia": Africa, "Gabon": Africa,
	"Gambia": Africa, "Ghana": Africa, "Guinea": Africa, "Guinea-Bissau": Africa,
	"Kenya": Africa, "Lesotho": Africa, "Liberia": Africa, "Libya": Africa,
	"Madagascar": Africa, "Malawi": Africa, "Mali": Africa, "Mauritania": Africa,
	"Mauritius": Africa, "Morocco": Africa, "Mozambique": Africa,
	"Namibia": Africa, "Niger": Africa, "Nigeria": Africa, "Rwanda": Africa,
	"Sao Tome and Principe": Africa, "Senegal": Africa, "Seychelles": Africa,
	"Sierra Leone": Africa, "Somalia": Africa, "South Africa": Africa,
	"South Sudan": Africa, "Sudan": Africa, "Tanzania": Africa, "Togo": Africa,
	"Tunisia": Africa, "Uganda": Africa, "Zambia": Africa, "Zimbabwe": Africa,

	// Asia
	"Afghanistan": Asia, "Armenia": Asia, "Azerbaijan": Asia, "Bahrain": Asia,
	"Bangladesh": Asia, "Bhutan": Asia, "Brunei": Asia, "Cambodia": Asia,
	"China": Asia, "Georgia": Asia, "India": Asia, "Indonesia": Asia,
	"Iran": Asia, "Iraq": Asia, "Israel": Asia, "Japan": Asia, "Jordan": Asia,
	"Kazakhstan": Asia, "Kuwait": Asia, "Kyrgyzstan": Asia, "Laos": Asia,
	"Lebanon": Asia, "Malaysia": Asia, "Maldives": Asia, "Mongolia": Asia,
	"Myanmar": Asia, "Nepal": Asia, "North Korea": Asia, "Oman": Asia,
	"Pakistan": Asia, "Philippines": Asia, "Qatar": Asia, "Saudi Arabia": Asia,
	"Singapore": Asia, "South Korea": Asia, "Sri Lanka": Asia, "Syria": Asia,
	"Taiwan": Asia, "Tajikistan": Asia, "Thailand": Asia, "Timor-Leste": Asia,
	"Turkey": Asia, "Turkmenistan": Asia, "United Arab Emirates": Asia,
	"Uzbekistan": Asia, "Vietnam": Asia, "Yemen": Asia,

	// America
	"Antigua and Barbuda": America, "Argentina": America, "Bahamas": America,
	"Barbados": America, "Belize": America, "Bolivia": America,
	"Brazil": America, "Canada": America, "Chile": America, "Colombia": America,
	"Costa Rica": America, "Cuba": America, "Dominica": America,
	"Dominican Republic": America, "Ecuador": America, "El Salvador": America,
	"Grenada": America, "Guatemala": America, "Guyana": America,
	"Haiti": America, "Honduras": America, "Jamaica": America,
	"Mexico": America, "Nicaragua": America, "Panama": America,
	"Paraguay": America, "Peru": America, "Saint Kitts and Nevis": America,
	"Saint Lucia": America, "Saint Vincent and the Grenadines": America,
	"Suriname": America, "Trinidad and Tobago": America,
	"United States": America, "Uruguay": America, "Venezuela": America,

	// Europe
	"Albania": Europe, "Andorra": Europe, "Austria": Europe, "Belarus": Europe,
	"Belgium": Europe, "Bosnia and Herzegovina": Europe, "Bulgaria": Europe,
	"Croatia": Europe, "Cyprus": Europe, "Czechia": Europe, "Denmark": Europe,
	"Estonia": Europe, "Finland": Europe, "France": Europe, "Germany": Europe,
	"Greece": Europe, "Hungary": Europe, "Iceland": Europe, "Ireland": Europe,
	"Italy": Europe, "Latvia": Europe, "Liechtenstein": Europe,
	"Lithuania": Europe, "Luxembourg": Europe, "Malta": Europe,
	"Moldova": Europe, "Monaco": Europe, "Montenegro": Europe,
	"Netherlands": Europe, "North Macedonia": Europe, "Norway": Europe,
	"Poland": Europe, "Portugal": Europe, "Romania": Europe, "Russia": Europe,
	"San Marino": Europe, "Serbia": Europe, "Slovakia": Europe,
	"Slovenia": Europe, "Spain": Europe, "Sweden": Europe,
	"Switzerland": Europe, "Ukraine": Europe, "United Kingdom": Europe,

	// Oceania
	"Australia": Oceania, "Fiji": Oceania, "Kiribati": Oceania,
	"Marshall Islands": Oceania, "Micronesia": Oceania, "Nauru": Oceania,
	"New Zealand": Oceania, "Palau": Oceania, "Papua New Guinea": Oceania,
	"Samoa": Oceania, "Solomon Islands": Oceania, "Tonga": Oceania,
	"Tuvalu": Oceania, "Vanuatu": Oceania,
}

// aliasTable maps variant and historical display names onto canonical
// table entries. Sources disagree on these more than anything else.
var aliasTable = map[string]string{
	"Cape Verde":                       "Cabo Verde",
	"Congo, Rep.":                      "Congo",
	"Congo, Dem. Rep.":                 "Democratic Republic of the Congo",
	"DR Congo":                         "Democratic Republic of the Congo",
	"Dem. Rep. Congo":                  "Democratic Republic of the Congo",
	"Zaire":                            "Democratic Republic of the Congo",
	"Ivory Coast":                      "Cote d'Ivoire",
	"Côte d'Ivoire":               "Cote d'Ivoire",
	"Swaziland":                        "Eswatini",
	"Gambia, The":                      "Gambia",
	"The Gambia":                       "Gambia",
	"Egypt, Arab Rep.":                 "Egypt",
	"Tanzania, United Republic of":     "Tanzania",
	"Burma":                            "Myanmar",
	"Brunei Darussalam":                "Brunei",
	"Iran, Islamic Rep.":               "Iran",
	"Korea, Dem. People's Rep.":        "North Korea",
	"Korea, Rep.":                      "South Korea",
	"Kyrgyz Republic":                  "Kyrgyzstan",
	"Lao PDR":                          "Laos",
	"Lao People's Democratic Republic": "Laos",
	"Syrian Arab Republic":             "Syria",
	"Timor":                            "Timor-Leste",
	"East Timor":                       "Timor-Leste",
	"Viet Nam":                         "Vietnam",
	"Yemen, Rep.":                      "Yemen",
	"West Bank and Gaza":               "Israel",
	"Bahamas, The":                     "Bahamas",
	"St. Kitts and Nevis":              "Saint Kitts and Nevis",
	"St. Lucia":                        "Saint Lucia",
	"St. Vincent and the Grenadines":   "Saint Vincent and the Grenadines",
	"Venezuela, RB":                    "Venezuela",
	"USA":                              "United States",
	"Czech Republic":                   "Czechia",
	"Macedonia, FYR":                   "North Macedonia",
	"Russian Federation":               "Russia",
	"Slovak Republic":                  "Slovakia",
	"UK":                               "United Kingdom",
	"Micronesia, Fed. Sts.":            "Micronesia",
}
