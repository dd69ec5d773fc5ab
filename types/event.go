package types

import "fmt"

// EventKind enumerates the mutations a System reports to its district
// configuration.
//
// The set is closed: configurations switch over it exhaustively.
type EventKind int

const (
	// EventCreate is emitted once when the System is constructed.
	EventCreate EventKind = iota

	// EventIncreaseVotes is emitted after votes change at a leaf region.
	EventIncreaseVotes

	// EventBeforeSetParent is emitted before a region is attached to a parent.
	EventBeforeSetParent

	// EventAfterSetParent is emitted after a region is attached to a parent.
	EventAfterSetParent

	// EventBeforeRemoveParent is emitted before a region is detached.
	EventBeforeRemoveParent

	// EventAfterRemoveParent is emitted after a region is detached.
	EventAfterRemoveParent

	// EventRegionCreated is emitted after a region is added.
	EventRegionCreated

	// EventRegionModified is emitted when a region's district setup changes.
	EventRegionModified

	// EventRegionRemoved is emitted after a region is removed.
	EventRegionRemoved

	// EventCandidacyRemoved is emitted after a candidacy is removed.
	EventCandidacyRemoved
)

// EventKinds lists every event kind in declaration order.
var EventKinds = []EventKind{
	EventCreate,
	EventIncreaseVotes,
	EventBeforeSetParent,
	EventAfterSetParent,
	EventBeforeRemoveParent,
	EventAfterRemoveParent,
	EventRegionCreated,
	EventRegionModified,
	EventRegionRemoved,
	EventCandidacyRemoved,
}

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventCreate:
		return "Create"
	case EventIncreaseVotes:
		return "IncreaseVotes"
	case EventBeforeSetParent:
		return "BeforeSetParent"
	case EventAfterSetParent:
		return "AfterSetParent"
	case EventBeforeRemoveParent:
		return "BeforeRemoveParent"
	case EventAfterRemoveParent:
		return "AfterRemoveParent"
	case EventRegionCreated:
		return "RegionCreated"
	case EventRegionModified:
		return "RegionModified"
	case EventRegionRemoved:
		return "RegionRemoved"
	case EventCandidacyRemoved:
		return "CandidacyRemoved"
	default:
		return "Unknown"
	}
}

// Event describes one mutation.
//
// Which fields are meaningful depends on Kind:
//   - IncreaseVotes: Region, Candidacy, Delta
//   - BeforeSetParent: Region, Parent
//   - AfterSetParent: Region, Parent, PreviousParent/HasPreviousParent
//   - Before/AfterRemoveParent, RegionCreated, RegionModified: Region
//   - RegionRemoved: Region, Cascade
//   - CandidacyRemoved: Candidacy
type Event struct {
	Kind              EventKind
	Region            RegionID
	Parent            RegionID
	PreviousParent    RegionID
	HasPreviousParent bool
	Candidacy         CandidacyID
	Delta             int64
	Cascade           bool
}

// CreateEvent builds an EventCreate.
func CreateEvent() Event {
	return Event{Kind: EventCreate}
}

// IncreaseVotesEvent builds an EventIncreaseVotes.
func IncreaseVotesEvent(region RegionID, candidacy CandidacyID, delta int64) Event {
	return Event{Kind: EventIncreaseVotes, Region: region, Candidacy: candidacy, Delta: delta}
}

// BeforeSetParentEvent builds an EventBeforeSetParent.
func BeforeSetParentEvent(region, parent RegionID) Event {
	return Event{Kind: EventBeforeSetParent, Region: region, Parent: parent}
}

// AfterSetParentEvent builds an EventAfterSetParent.
//
// Parameters:
//   - region: Region that was attached
//   - parent: New parent
//   - previous: Former parent (ignored when hadPrevious is false)
//   - hadPrevious: Whether the region had a parent before
func AfterSetParentEvent(region, parent, previous RegionID, hadPrevious bool) Event {
	return Event{
		Kind:              EventAfterSetParent,
		Region:            region,
		Parent:            parent,
		PreviousParent:    previous,
		HasPreviousParent: hadPrevious,
	}
}

// RegionEvent builds an event that only carries a region.
func RegionEvent(kind EventKind, region RegionID) Event {
	return Event{Kind: kind, Region: region}
}

// RegionRemovedEvent builds an EventRegionRemoved.
func RegionRemovedEvent(region RegionID, cascade bool) Event {
	return Event{Kind: EventRegionRemoved, Region: region, Cascade: cascade}
}

// CandidacyRemovedEvent builds an EventCandidacyRemoved.
func CandidacyRemovedEvent(candidacy CandidacyID) Event {
	return Event{Kind: EventCandidacyRemoved, Candidacy: candidacy}
}

// String renders the event with the fields relevant to its kind.
func (e Event) String() string {
	switch e.Kind {
	case EventIncreaseVotes:
		return fmt.Sprintf("%s{region=%d candidacy=%d delta=%d}", e.Kind, e.Region, e.Candidacy, e.Delta)
	case EventBeforeSetParent:
		return fmt.Sprintf("%s{region=%d parent=%d}", e.Kind, e.Region, e.Parent)
	case EventAfterSetParent:
		if e.HasPreviousParent {
			return fmt.Sprintf("%s{region=%d parent=%d previous=%d}", e.Kind, e.Region, e.Parent, e.PreviousParent)
		}

		return fmt.Sprintf("%s{region=%d parent=%d previous=none}", e.Kind, e.Region, e.Parent)
	case EventRegionRemoved:
		return fmt.Sprintf("%s{region=%d cascade=%t}", e.Kind, e.Region, e.Cascade)
	case EventCandidacyRemoved:
		return fmt.Sprintf("%s{candidacy=%d}", e.Kind, e.Candidacy)
	case EventCreate:
		return e.Kind.String()
	default:
		return fmt.Sprintf("%s{region=%d}", e.Kind, e.Region)
	}
}
