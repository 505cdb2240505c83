// Package location classifies free-text job locations for a US-only feed.
package location

import "strings"

// Indicators that a posting is outside the US. These are checked before
// the US list and short-circuit, so a location naming both regions is
// excluded.
var nonUSIndicators = []string{
	// remote-region qualifiers
	"emea", "apac", "latam",
	// regions
	"europe", "asia pacific", "latin america", "middle east",
	// countries
	"united kingdom", "uk", "england", "scotland", "ireland", "canada",
	"germany", "france", "spain", "portugal", "italy", "netherlands",
	"belgium", "sweden", "norway", "denmark", "finland", "poland",
	"czech", "austria", "switzerland", "romania", "hungary", "greece",
	"ukraine", "turkey", "israel", "india", "pakistan", "china",
	"japan", "korea", "singapore", "malaysia", "indonesia",
	"philippines", "vietnam", "thailand", "australia", "new zealand",
	"brazil", "argentina", "chile", "colombia", "peru", "mexico",
	"costa rica", "egypt", "nigeria", "kenya", "south africa",
	// cities
	"london", "dublin", "toronto", "vancouver", "montreal", "ottawa",
	"berlin", "munich", "paris", "madrid", "barcelona", "lisbon",
	"amsterdam", "stockholm", "copenhagen", "oslo", "helsinki",
	"warsaw", "prague", "vienna", "zurich", "tel aviv", "bangalore",
	"bengaluru", "mumbai", "hyderabad", "pune", "tokyo", "seoul",
	"beijing", "shanghai", "hong kong", "taipei", "sydney",
	"melbourne", "auckland", "sao paulo", "mexico city",
	"buenos aires", "bogota", "dubai",
}

// Indicators that a posting is inside the US. The bare two-letter state
// codes match as loose substrings and occasionally hit inside unrelated
// words; kept as-is.
var usIndicators = []string{
	// country-level
	"united states", "usa", "u.s.", "us",
	// remote roles with no region qualifier count as reachable
	"remote",
	// states
	"california", "new york", "texas", "washington", "massachusetts",
	"colorado", "illinois", "georgia", "oregon", "florida",
	"pennsylvania", "virginia", "north carolina", "arizona", "utah",
	"michigan", "ohio", "tennessee", "minnesota", "missouri",
	"new jersey", "connecticut", "wisconsin", "indiana", "nevada",
	"maryland",
	// two-letter codes for the usual tech-hub states
	"ca", "wa", "or", "tx", "il", "ga", "fl", "pa", "va", "nc", "az",
	"ut", "mi", "oh", "tn", "mn", "nj", "ct", "wi", "md", "dc",
	// cities
	"san francisco", "seattle", "austin", "boston", "chicago",
	"denver", "atlanta", "los angeles", "san jose", "san diego",
	"portland", "palo alto", "mountain view", "sunnyvale",
	"menlo park", "oakland", "brooklyn", "miami", "dallas", "houston",
	"phoenix", "philadelphia", "pittsburgh", "raleigh", "nashville",
	"salt lake city", "minneapolis", "ann arbor", "boulder",
}

// IncludeUS reports whether a posting with the given location belongs in
// the feed. An empty location cannot be classified and is kept; a location
// matching neither list is dropped.
func IncludeUS(location string) bool {
	if location == "" {
		return true
	}

	loc := strings.ToLower(location)
	for _, indicator := range nonUSIndicators {
		if strings.Contains(loc, indicator) {
			return false
		}
	}
	for _, indicator := range usIndicators {
		if strings.Contains(loc, indicator) {
			return true
		}
	}
	return false
}
