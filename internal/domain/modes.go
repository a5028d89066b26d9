package domain

// StringMatchMode is how a StringMatchValue compares text
type StringMatchMode string

const (
	StringContains   StringMatchMode = "contains"
	StringStartsWith StringMatchMode = "starts_with"
	StringEquals     StringMatchMode = "equals"
)

// StringMatchModes lists the modes in display order
var StringMatchModes = []StringMatchMode{StringContains, StringStartsWith, StringEquals}

func (m StringMatchMode) Valid() bool {
	switch m {
	case StringContains, StringStartsWith, StringEquals:
		return true
	}
	return false
}

// APIKey is the predicate name the GraphQL API uses for this mode
func (m StringMatchMode) APIKey() string {
	switch m {
	case StringStartsWith:
		return "sw"
	case StringEquals:
		return "eq"
	default:
		return "has"
	}
}

func (m StringMatchMode) Label() string {
	switch m {
	case StringStartsWith:
		return "start with"
	case StringEquals:
		return "exactly match"
	default:
		return "contain"
	}
}

// Next cycles to the following mode
func (m StringMatchMode) Next() StringMatchMode {
	return nextMode(StringMatchModes, m)
}

// NumberMatchMode is how a NumberMatchValue compares numbers
type NumberMatchMode string

const (
	NumberLessThan    NumberMatchMode = "less_than"
	NumberEquals      NumberMatchMode = "equals"
	NumberGreaterThan NumberMatchMode = "greater_than"
)

// NumberMatchModes lists the modes in display order
var NumberMatchModes = []NumberMatchMode{NumberLessThan, NumberEquals, NumberGreaterThan}

func (m NumberMatchMode) Valid() bool {
	switch m {
	case NumberLessThan, NumberEquals, NumberGreaterThan:
		return true
	}
	return false
}

func (m NumberMatchMode) APIKey() string {
	switch m {
	case NumberLessThan:
		return "lt"
	case NumberEquals:
		return "eq"
	default:
		return "gt"
	}
}

func (m NumberMatchMode) Label() string {
	switch m {
	case NumberLessThan:
		return "less than"
	case NumberEquals:
		return "equal to"
	default:
		return "more than"
	}
}

func (m NumberMatchMode) Next() NumberMatchMode {
	return nextMode(NumberMatchModes, m)
}

// ArrayMatchMode is how an ArrayMatchValue compares sets
type ArrayMatchMode string

const (
	ArrayAllOf   ArrayMatchMode = "all_of"
	ArrayAnyOf   ArrayMatchMode = "any_of"
	ArrayExactly ArrayMatchMode = "exactly"
)

// ArrayMatchModes lists the modes in display order
var ArrayMatchModes = []ArrayMatchMode{ArrayAllOf, ArrayAnyOf, ArrayExactly}

func (m ArrayMatchMode) Valid() bool {
	switch m {
	case ArrayAllOf, ArrayAnyOf, ArrayExactly:
		return true
	}
	return false
}

func (m ArrayMatchMode) APIKey() string {
	switch m {
	case ArrayAnyOf:
		return "some"
	case ArrayExactly:
		return "eq"
	default:
		return "all"
	}
}

func (m ArrayMatchMode) Label() string {
	switch m {
	case ArrayAnyOf:
		return "one of"
	case ArrayExactly:
		return "exactly"
	default:
		return "all of"
	}
}

func (m ArrayMatchMode) Next() ArrayMatchMode {
	return nextMode(ArrayMatchModes, m)
}

func nextMode[M comparable](modes []M, current M) M {
	for i, m := range modes {
		if m == current {
			return modes[(i+1)%len(modes)]
		}
	}
	return modes[0]
}
