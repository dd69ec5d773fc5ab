package types

import (
	"fmt"
	"strings"
)

// Method selects a built-in apportionment formula.
//
// Divisor methods award one seat per round to the highest quotient
// votes / divisor(seats won so far). Remainder methods award the integer
// part of votes / quota first and hand out the remaining seats by largest
// fractional remainder.
type Method int

const (
	// MethodDHondt is the divisor method with divisor s+1.
	MethodDHondt Method = iota

	// MethodSainteLague is the divisor method with divisor 2s+1.
	MethodSainteLague

	// MethodAdams is the divisor method with divisor s.
	MethodAdams

	// MethodImperiali is the divisor method with divisor s+2.
	MethodImperiali

	// MethodHuntingtonHill is the divisor method with divisor sqrt(s(s+1)).
	MethodHuntingtonHill

	// MethodDanish is the divisor method with divisor 3s+1.
	MethodDanish

	// MethodWinnerTakesAll gives every seat to the most voted candidate.
	MethodWinnerTakesAll

	// MethodHare is the largest remainder method with quota votes/seats.
	MethodHare

	// MethodDroop is the largest remainder method with quota floor(votes/(seats+1))+1.
	MethodDroop

	// MethodHagenbachBischoff is the largest remainder method with quota votes/(seats+1).
	MethodHagenbachBischoff

	// MethodImperialiQuotient is the largest remainder method with quota floor(votes/(seats+2))+1.
	MethodImperialiQuotient
)

// Methods lists every built-in method in declaration order.
var Methods = []Method{
	MethodDHondt,
	MethodSainteLague,
	MethodAdams,
	MethodImperiali,
	MethodHuntingtonHill,
	MethodDanish,
	MethodWinnerTakesAll,
	MethodHare,
	MethodDroop,
	MethodHagenbachBischoff,
	MethodImperialiQuotient,
}

// String returns the canonical name of the method.
func (m Method) String() string {
	switch m {
	case MethodDHondt:
		return "dhondt"
	case MethodSainteLague:
		return "sainte-lague"
	case MethodAdams:
		return "adams"
	case MethodImperiali:
		return "imperiali"
	case MethodHuntingtonHill:
		return "huntington-hill"
	case MethodDanish:
		return "danish"
	case MethodWinnerTakesAll:
		return "winner-takes-all"
	case MethodHare:
		return "hare"
	case MethodDroop:
		return "droop"
	case MethodHagenbachBischoff:
		return "hagenbach-bischoff"
	case MethodImperialiQuotient:
		return "imperiali-quotient"
	default:
		return "unknown"
	}
}

// IsDivisor reports whether the method belongs to the highest-quotient family.
func (m Method) IsDivisor() bool {
	return m >= MethodDHondt && m <= MethodWinnerTakesAll
}

// Valid reports whether m is one of the built-in methods.
func (m Method) Valid() bool {
	return m >= MethodDHondt && m <= MethodImperialiQuotient
}

// ParseMethod converts a method name into a Method.
//
// Matching ignores case, spaces, dashes, underscores and apostrophes, so
// "D'Hondt", "dhondt" and "DHONDT" are equivalent.
//
// Parameters:
//   - name: Method name
//
// Returns:
//   - Method: Parsed method
//   - error: ErrUnknownMethod wrapped with the rejected name
func ParseMethod(name string) (Method, error) {
	key := normalizeMethodName(name)
	for _, m := range Methods {
		if normalizeMethodName(m.String()) == key {
			return m, nil
		}
	}

	switch key {
	case "wta":
		return MethodWinnerTakesAll, nil
	case "webster":
		return MethodSainteLague, nil
	case "hamilton", "largestremainder":
		return MethodHare, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

func normalizeMethodName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '\'', '’':
			return -1
		}

		return r
	}, strings.ToLower(strings.TrimSpace(name)))
}

// District is the apportionment setup of one electoral district.
type District struct {
	// Method is the apportionment formula.
	Method Method

	// Seats is the number of seats the district awards.
	Seats uint32

	// Cutoff is the vote share (0.0-1.0) a candidacy must exceed to take part.
	// A candidacy with votes <= floor(total * Cutoff) is excluded.
	Cutoff float64
}

// Validate checks that the district can be apportioned.
//
// Returns:
//   - error: ErrInvalidDistrict wrapped with the reason, nil if valid
func (d District) Validate() error {
	if !d.Method.Valid() {
		return fmt.Errorf("%w: unknown method %d", ErrInvalidDistrict, int(d.Method))
	}
	if d.Cutoff < 0 || d.Cutoff >= 1 {
		return fmt.Errorf("%w: cutoff %v outside [0, 1)", ErrInvalidDistrict, d.Cutoff)
	}

	return nil
}

// String returns a compact description such as "dhondt/13@0.03".
func (d District) String() string {
	return fmt.Sprintf("%s/%d@%g", d.Method, d.Seats, d.Cutoff)
}

// ApportionmentPolicy distributes seats among candidates.
//
// Implementations must:
//   - Clear every candidate's seats before assigning
//   - Return ErrEmptyResults when candidates is empty
//   - Mutate seats in place through the Candidate interface
//   - Resolve ties in favour of the last maximal candidate in slice order
type ApportionmentPolicy interface {
	// Apportion assigns seats among candidates.
	//
	// Parameters:
	//   - candidates: Candidates with current votes (seats are overwritten)
	//   - seats: Number of seats to distribute
	//
	// Returns:
	//   - error: ErrEmptyResults for an empty candidate list
	Apportion(candidates []Candidate, seats uint32) error
}

// PolicyFunc adapts an ordinary function to ApportionmentPolicy.
type PolicyFunc func(candidates []Candidate, seats uint32) error

var _ ApportionmentPolicy = PolicyFunc(nil)

// Apportion calls f(candidates, seats).
func (f PolicyFunc) Apportion(candidates []Candidate, seats uint32) error {
	return f(candidates, seats)
}
