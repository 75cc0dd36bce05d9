package mockgen

import (
	"fmt"
	mathrand "math/rand/v2"
	"strconv"
	"strings"
)

var (
	firstNames = []string{
		"James", "Emma", "Michael", "Olivia", "Robert", "Sophia", "William", "Ava",
		"David", "Isabella", "John", "Mia", "Joseph", "Charlotte", "Daniel", "Amelia",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
		"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas",
	}
	emailDomains = []string{
		"example.com", "test.com", "demo.com", "sample.org",
		"placeholder.net", "mock.io", "dummy.co", "fake.dev",
	}
	cities = []string{
		"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia",
		"San Antonio", "San Diego", "Dallas", "San Jose", "Austin", "Jacksonville",
		"Seattle", "Denver", "Boston", "Portland",
	}
	streetNames = []string{
		"Main", "Oak", "Maple", "Cedar", "Elm", "Washington", "Lake", "Hill",
		"Park", "Pine", "First", "Second", "Third", "Broadway", "Center", "Church",
	}
	states     = []string{"CA", "NY", "TX", "FL", "IL", "PA", "OH", "GA", "NC", "MI"}
	countries  = []string{"USA", "Canada", "UK", "Germany", "France", "Australia", "Japan", "Brazil"}
	currencies = []string{"USD", "EUR", "GBP", "JPY", "CAD", "AUD", "CHF", "CNY"}
	companies  = []string{
		"Tech Solutions", "Global Systems", "Digital Dynamics", "Innovation Labs",
		"Data Corp", "Cloud Services", "Software Partners", "Smart Systems",
		"Future Tech", "Quantum Solutions", "Cyber Technologies", "Web Innovations",
	}
	jobTitles = []string{
		"Software Engineer", "Product Manager", "Data Scientist", "UX Designer",
		"DevOps Engineer", "Marketing Manager", "Sales Director", "CEO", "CTO",
		"Project Manager", "Business Analyst", "Quality Assurance Engineer",
	}
	descriptions = []string{
		"High-quality product with excellent features",
		"Innovative solution for modern challenges",
		"Reliable and efficient service",
		"Premium quality at affordable prices",
		"Customer-focused approach with proven results",
		"Industry-leading technology and support",
	}
)

// stringForHint returns a realistic value for a property name, or "" when the
// name matches no known category. Categories are checked in a fixed order, so
// "emailAddress" is an email and not an address.
func stringForHint(rng *mathrand.Rand, hint string) string {
	h := strings.ToLower(hint)
	if h == "" {
		return ""
	}

	switch {
	case strings.Contains(h, "email"):
		return email(rng)
	case strings.Contains(h, "phone"):
		return phone(rng)
	case strings.Contains(h, "avatar"):
		return fmt.Sprintf("https://i.pravatar.cc/200?u=%d", randomInt(rng, 1, 70))
	case containsAny(h, "image", "picture", "photo"):
		return fmt.Sprintf("https://picsum.photos/id/%d/400/400", randomInt(rng, 1, 1000))
	case containsAny(h, "url", "link", "website"):
		return resourceURL(rng)
	case strings.Contains(h, "name") && !containsAny(h, "user", "file"):
		switch {
		case strings.Contains(h, "first"):
			return pick(rng, firstNames)
		case strings.Contains(h, "last"):
			return pick(rng, lastNames)
		}
		return pick(rng, firstNames) + " " + pick(rng, lastNames)
	case strings.Contains(h, "user") && (strings.Contains(h, "name") || h == "user"):
		return strings.ToLower(pick(rng, firstNames)) + strconv.Itoa(randomInt(rng, 1, 999))
	case containsAny(h, "address", "street"):
		return fmt.Sprintf("%d %s Street", randomInt(rng, 1, 9999), pick(rng, streetNames))
	case strings.Contains(h, "city"):
		return pick(rng, cities)
	case containsAny(h, "state", "province"):
		return pick(rng, states)
	case containsAny(h, "zip", "postal"):
		return strconv.Itoa(randomInt(rng, 10000, 99999))
	case strings.Contains(h, "country"):
		return pick(rng, countries)
	case strings.Contains(h, "currency"):
		return pick(rng, currencies)
	case containsAny(h, "company", "organization"):
		return pick(rng, companies)
	case containsAny(h, "title", "position", "job"):
		return pick(rng, jobTitles)
	case containsAny(h, "description", "bio", "about"):
		return pick(rng, descriptions)
	}
	return ""
}

func email(rng *mathrand.Rand) string {
	first := strings.ToLower(pick(rng, firstNames))
	last := strings.ToLower(pick(rng, lastNames))
	return first + "." + last + "@" + pick(rng, emailDomains)
}

func phone(rng *mathrand.Rand) string {
	return fmt.Sprintf("+1 (%d) %d-%d",
		randomInt(rng, 200, 999), randomInt(rng, 200, 999), randomInt(rng, 1000, 9999))
}

func resourceURL(rng *mathrand.Rand) string {
	return fmt.Sprintf("https://example.com/resource/%d", randomInt(rng, 1, 9999))
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
