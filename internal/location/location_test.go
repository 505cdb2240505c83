package location

import "testing"

func TestIncludeUS(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     bool
	}{
		{name: "us city with state code", location: "San Francisco, CA", want: true},
		{name: "non-us city", location: "London, UK", want: false},
		{name: "empty location is kept", location: "", want: true},
		{name: "unclassifiable location is dropped", location: "Mars Colony", want: false},
		{name: "bare remote", location: "Remote", want: true},
		{name: "remote scoped to a region", location: "Remote - EMEA", want: false},
		// the non-US list wins when both lists match
		{name: "paris texas", location: "Paris, Texas", want: false},
		{name: "new york", location: "New York, NY", want: true},
		{name: "matching is case-insensitive", location: "SAN FRANCISCO", want: true},
		{name: "canadian city", location: "Toronto, Ontario, Canada", want: false},
		{name: "german city", location: "Berlin, Germany", want: false},
		{name: "state code only", location: "Austin, TX", want: true},
		{name: "indian city", location: "Bengaluru, India", want: false},
		{name: "country name", location: "United States", want: true},
		{name: "apac remote", location: "Remote (APAC)", want: false},
		{name: "korean city", location: "Seoul, South Korea", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IncludeUS(tt.location); got != tt.want {
				t.Errorf("IncludeUS(%q) = %v, want %v", tt.location, got, tt.want)
			}
		})
	}
}
