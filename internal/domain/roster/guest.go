package roster

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/okian/teamgen/internal/domain/model"
)

// DefaultGuestRating is used when a guest is added without a rating.
const DefaultGuestRating = 6.0

const (
	guestIDPrefix = "guest-"
	guestLastName = "(Guest)"
	guestPosition = "guest"
)

// NewGuest builds a player for someone missing from the roster. Guests get a
// synthetic id and otherwise look like any other player.
func NewGuest(name string, rating float64) model.Player {
	return model.Player{
		ID:        guestIDPrefix + uuid.NewString(),
		FirstName: strings.TrimSpace(name),
		LastName:  guestLastName,
		Rating:    rating,
		Position:  guestPosition,
		Guest:     true,
	}
}

// ParseGuest reads "Name" or "Name=rating". A missing rating falls back to
// defaultRating.
func ParseGuest(raw string, defaultRating float64) (model.Player, error) {
	name, value, hasRating := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Player{}, fmt.Errorf("%w: empty name in %q", ErrInvalidGuest, raw)
	}
	rating := defaultRating
	if hasRating {
		r, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(r) || math.IsInf(r, 0) {
			return model.Player{}, fmt.Errorf("%w: bad rating in %q", ErrInvalidGuest, raw)
		}
		rating = r
	}
	return NewGuest(name, rating), nil
}
