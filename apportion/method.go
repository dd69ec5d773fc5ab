package apportion

import (
	"fmt"

	"github.com/edugzlez/electosim/types"
)

// PolicyFor returns the built-in policy implementing a method.
//
// Parameters:
//   - method: Built-in method
//
// Returns:
//   - types.ApportionmentPolicy: Policy for the method
//   - error: types.ErrUnknownMethod for values outside types.Methods
func PolicyFor(method types.Method) (types.ApportionmentPolicy, error) {
	switch method {
	case types.MethodDHondt:
		return DHondt(), nil
	case types.MethodSainteLague:
		return SainteLague(), nil
	case types.MethodAdams:
		return Adams(), nil
	case types.MethodImperiali:
		return Imperiali(), nil
	case types.MethodHuntingtonHill:
		return HuntingtonHill(), nil
	case types.MethodDanish:
		return Danish(), nil
	case types.MethodWinnerTakesAll:
		return WinnerTakesAll{}, nil
	case types.MethodHare:
		return Hare(), nil
	case types.MethodDroop:
		return Droop(), nil
	case types.MethodHagenbachBischoff:
		return HagenbachBischoff(), nil
	case types.MethodImperialiQuotient:
		return ImperialiQuotient(), nil
	default:
		return nil, fmt.Errorf("%w: %d", types.ErrUnknownMethod, int(method))
	}
}
