package schema

import "regexp"

// =============================================================================
// SEMANTIC CATEGORY PATTERNS
// Fixed regex sets that hint at what an entity holds. Declaration order is a
// contract: it breaks score ties in the heuristic classifier.
// =============================================================================

// Semantic category names, in tie-break order.
const (
	CategoryPerson       = "person"
	CategoryOrganization = "organization"
	CategoryProduct      = "product"
	CategoryTransaction  = "transaction"
	CategoryLocation     = "location"
	CategoryTemporal     = "temporal"
)

// Categories lists the semantic categories in declaration order.
var Categories = []string{
	CategoryPerson,
	CategoryOrganization,
	CategoryProduct,
	CategoryTransaction,
	CategoryLocation,
	CategoryTemporal,
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile("(?i)" + e)
	}
	return out
}

var categoryPatterns = map[string][]*regexp.Regexp{
	CategoryPerson: compileAll(
		`name`, `first_?name`, `last_?name`, `email`, `phone`, `birth`,
		`gender`, `age`, `ssn`, `customer`, `client`, `person`, `user`,
		`employee`, `contact`,
	),
	CategoryOrganization: compileAll(
		`company`, `organi[sz]ation`, `\borg\b`, `business`, `vendor`,
		`supplier`, `department`, `branch`, `industry`, `tax_?id`,
		`registration`, `headquarters`,
	),
	CategoryProduct: compileAll(
		`product`, `\bitem\b`, `\bsku\b`, `price`, `cost`, `category`,
		`brand`, `inventory`, `stock`, `\bupc\b`, `barcode`, `manufacturer`,
	),
	CategoryTransaction: compileAll(
		`transaction`, `order`, `payment`, `invoice`, `amount`, `total`,
		`quantity`, `receipt`, `purchase`, `\bsale\b`, `refund`, `currency`,
	),
	CategoryLocation: compileAll(
		`address`, `city`, `state`, `country`, `\bzip\b`, `postal`,
		`latitude`, `longitude`, `\blat\b`, `\blng\b`, `region`, `location`,
		`street`,
	),
	CategoryTemporal: compileAll(
		`date`, `\btime\b`, `timestamp`, `created`, `updated`, `modified`,
		`year`, `month`, `\bday\b`, `schedule`, `event`, `expir`,
	),
}

// CategoryNameMatches counts how many of a category's patterns match an
// entity name.
func CategoryNameMatches(category, entityName string) int {
	return countMatches(category, entityName)
}

// CategoryFieldMatches counts how many of a category's patterns match a
// field name. A field may match several patterns of the same category; each
// match counts.
func CategoryFieldMatches(category, fieldName string) int {
	return countMatches(category, fieldName)
}

func countMatches(category, name string) int {
	if name == "" {
		return 0
	}
	n := 0
	for _, p := range categoryPatterns[category] {
		if p.MatchString(name) {
			n++
		}
	}
	return n
}
