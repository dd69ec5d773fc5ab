package electosim

import "github.com/edugzlez/electosim/types"

// Re-export types from the types package.
//
// Internal packages depend on types only, never on the root package; the
// aliases give users a single import for the common API.
type (
	RegionID    = types.RegionID
	CandidacyID = types.CandidacyID
	Tally       = types.Tally
	Result      = types.Result
	Method      = types.Method
	District    = types.District
	Event       = types.Event
	EventKind   = types.EventKind
)

// Re-export interfaces from the types package.
type (
	Candidate             = types.Candidate
	ApportionmentPolicy   = types.ApportionmentPolicy
	DistrictConfiguration = types.DistrictConfiguration
	DistrictSetter        = types.DistrictSetter
	TallyTree             = types.TallyTree
	MetricsCollector      = types.MetricsCollector
	Logger                = types.Logger
	Hooks                 = types.Hooks
)

// Re-export Method constants.
const (
	MethodDHondt            = types.MethodDHondt
	MethodSainteLague       = types.MethodSainteLague
	MethodAdams             = types.MethodAdams
	MethodImperiali         = types.MethodImperiali
	MethodHuntingtonHill    = types.MethodHuntingtonHill
	MethodDanish            = types.MethodDanish
	MethodWinnerTakesAll    = types.MethodWinnerTakesAll
	MethodHare              = types.MethodHare
	MethodDroop             = types.MethodDroop
	MethodHagenbachBischoff = types.MethodHagenbachBischoff
	MethodImperialiQuotient = types.MethodImperialiQuotient
)

// Re-export EventKind constants.
const (
	EventCreate             = types.EventCreate
	EventIncreaseVotes      = types.EventIncreaseVotes
	EventBeforeSetParent    = types.EventBeforeSetParent
	EventAfterSetParent     = types.EventAfterSetParent
	EventBeforeRemoveParent = types.EventBeforeRemoveParent
	EventAfterRemoveParent  = types.EventAfterRemoveParent
	EventRegionCreated      = types.EventRegionCreated
	EventRegionModified     = types.EventRegionModified
	EventRegionRemoved      = types.EventRegionRemoved
	EventCandidacyRemoved   = types.EventCandidacyRemoved
)
