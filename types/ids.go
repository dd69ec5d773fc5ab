package types

// RegionID identifies a region inside one tree.
//
// Identifiers are issued by the tree in increasing order starting at zero
// and are never reused while the region exists.
type RegionID uint32

// CandidacyID identifies a candidacy inside one tree.
type CandidacyID uint32
