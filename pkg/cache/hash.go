package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/planarity/pkg/graph"
)

// hashKey returns prefix:sha256(json(parts)).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// GraphHash hashes the structure of g: node labels and virtual flags in
// handle order, then edge ends in edge order. Rotations are not part of the
// hash, so a graph hashes the same before and after embedding.
func GraphHash(g *graph.Graph) string {
	h := sha256.New()
	var buf [9]byte
	put := func(v int64, flag byte) {
		for i := range 8 {
			buf[i] = byte(v >> (8 * i))
		}
		buf[8] = flag
		h.Write(buf[:])
	}
	put(int64(g.NumNodes()), 'n')
	for _, n := range g.Nodes() {
		var f byte
		if g.IsVirtual(n) {
			f = 1
		}
		put(g.Label(n), f)
	}
	put(int64(g.NumEdges()), 'e')
	for _, e := range g.Edges() {
		u, v := g.Ends(e)
		put(int64(u), 0)
		put(int64(v), 0)
	}
	return hex.EncodeToString(h.Sum(nil))
}
