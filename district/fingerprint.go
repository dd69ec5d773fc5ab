package district

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"

	"github.com/edugzlez/electosim/types"
)

// fingerprint hashes a district setup together with a tally snapshot.
//
// Snapshots are ordered by candidacy id, so equal inputs hash equally.
func fingerprint(d types.District, results []types.Result) uint64 {
	buf := make([]byte, 0, 24+len(results)*16)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(d.Method)) //nolint:gosec
	buf = binary.LittleEndian.AppendUint64(buf, uint64(d.Seats))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(d.Cutoff))
	for _, r := range results {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(r.Candidacy))
		buf = binary.LittleEndian.AppendUint64(buf, r.VoteCount)
		buf = binary.LittleEndian.AppendUint32(buf, r.SeatCount)
	}

	return xxh3.Hash(buf)
}
