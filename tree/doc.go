// Package tree provides the hierarchical aggregation tree of electosim.
//
// A Tree owns every region, every candidacy and every region tally table.
// Regions reference their parent and children by id through one owning map,
// so there are no pointer cycles; logical cycles are rejected by walking the
// ancestor chain before every re-parent.
//
// # Propagation
//
// Votes and seats recorded at a region are mirrored into every ancestor and
// into a synthetic global root:
//
//	IncreaseVotes(leaf, c, +10)
//	  leaf.c   += 10
//	  parent.c += 10
//	  ...
//	  root.c   += 10
//
// Set operations compute the signed difference from the current value and
// delegate to the increase operations, and re-parenting moves a region's
// snapshot with the same deltas. For every region R and candidacy C,
// R.Votes(C) equals the sum of the votes recorded at the leaves of R's subtree,
// and the root holds the sum over all top-level regions.
//
// # Leaf policy
//
// The tree itself accepts writes at any region. The rule that votes are only
// recorded at leaves is enforced by the electosim.System facade.
//
// A Tree is not safe for concurrent use.
package tree
