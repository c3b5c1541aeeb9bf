package search

import (
	"math/rand/v2"

	"github.com/dbsmedya/amplisearch/internal/types"
)

// cyclingSampler returns a fixed sequence regardless of the requested state.
type cyclingSampler struct {
	seq        []int
	pos        int
	iterations []int
}

func (c *cyclingSampler) Sample(_ int, _ *types.MarkedSet, iterations int, _ *rand.Rand) (int, error) {
	v := c.seq[c.pos%len(c.seq)]
	c.pos++
	c.iterations = append(c.iterations, iterations)
	return v, nil
}
