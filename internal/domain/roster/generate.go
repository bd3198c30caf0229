package roster

import (
	"fmt"
	"math/rand"

	"github.com/okian/teamgen/internal/domain/model"
)

// Rating bands for generated players. Each band is picked with its weight
// and a rating is drawn uniformly inside it.
var ratingBands = []struct { //nolint:gochecknoglobals // fixed table
	min, span float64
	weight    int
}{
	{min: 9.0, span: 1.0, weight: 1}, // elite
	{min: 7.0, span: 2.0, weight: 3}, // high
	{min: 4.0, span: 3.0, weight: 4}, // average
	{min: 1.0, span: 3.0, weight: 2}, // low
}

var positions = []string{"goalkeeper", "defender", "winger", "pivot"} //nolint:gochecknoglobals // fixed table

// Generate builds n synthetic players with ids "1".."n" and ratings spread
// over the rating bands, rounded to one decimal. n <= 0 yields no players.
func Generate(n int, rng *rand.Rand) []model.Player {
	if n <= 0 {
		return []model.Player{}
	}
	total := 0
	for _, b := range ratingBands {
		total += b.weight
	}

	players := make([]model.Player, 0, n)
	for i := range n {
		pick := rng.Intn(total)
		band := ratingBands[len(ratingBands)-1]
		for _, b := range ratingBands {
			if pick < b.weight {
				band = b
				break
			}
			pick -= b.weight
		}
		rating := band.min + rng.Float64()*band.span
		players = append(players, model.Player{
			ID:        fmt.Sprintf("%d", i+1),
			FirstName: fmt.Sprintf("Player%d", i+1),
			Rating:    float64(int(rating*10+0.5)) / 10,
			Position:  positions[rng.Intn(len(positions))],
		})
	}
	return players
}

// DrawPools picks count pools of size players each from the roster. Players
// within a pool are distinct; pools are drawn independently.
func DrawPools(players []model.Player, count, size int, rng *rand.Rand) ([][]model.Player, error) {
	if count < 0 || size < 0 {
		return nil, fmt.Errorf("%w: cannot draw %d pools of %d players", ErrInvalidRoster, count, size)
	}
	if size > len(players) {
		return nil, fmt.Errorf("%w: need %d players, roster has %d", ErrInvalidRoster, size, len(players))
	}
	pools := make([][]model.Player, 0, count)
	for range count {
		perm := rng.Perm(len(players))
		pool := make([]model.Player, size)
		for i := range pool {
			pool[i] = players[perm[i]]
		}
		pools = append(pools, pool)
	}
	return pools, nil
}
