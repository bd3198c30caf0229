package roster

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okian/teamgen/internal/domain/dedupe"
	"github.com/okian/teamgen/internal/domain/model"
	"gopkg.in/yaml.v3"
)

const rosterFileMode = 0o644

type fileRoster struct {
	Players []filePlayer `yaml:"players"`
}

type filePlayer struct {
	ID        string  `yaml:"id"`
	FirstName string  `yaml:"first_name"`
	LastName  string  `yaml:"last_name"`
	Rating    float64 `yaml:"rating"`
	Position  string  `yaml:"position,omitempty"`
}

// LoadFile reads a YAML roster from path.
func LoadFile(path string) ([]model.Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return Load(bytes.NewReader(data))
}

// Load decodes a YAML roster of the form
//
//	players:
//	  - id: "1"
//	    first_name: Ana
//	    last_name: Silva
//	    rating: 7.4
func Load(r io.Reader) ([]model.Player, error) {
	var doc fileRoster
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoster, err)
	}
	if len(doc.Players) == 0 {
		return nil, ErrEmptyRoster
	}

	ids := dedupe.NewInMemoryDeduper(dedupe.WithCapacity(len(doc.Players)))
	players := make([]model.Player, 0, len(doc.Players))
	for i, fp := range doc.Players {
		id := strings.TrimSpace(fp.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: player %d has no id", ErrInvalidRoster, i+1)
		}
		if strings.TrimSpace(fp.FirstName) == "" {
			return nil, fmt.Errorf("%w: player %s has no first name", ErrInvalidRoster, id)
		}
		if ids.SeenAndRecord(id) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		players = append(players, model.Player{
			ID:        id,
			FirstName: strings.TrimSpace(fp.FirstName),
			LastName:  strings.TrimSpace(fp.LastName),
			Rating:    fp.Rating,
			Position:  fp.Position,
		})
	}
	return players, nil
}

// Save encodes players in the format Load reads.
func Save(w io.Writer, players []model.Player) error {
	doc := fileRoster{Players: make([]filePlayer, 0, len(players))}
	for _, p := range players {
		doc.Players = append(doc.Players, filePlayer{
			ID:        p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Rating:    p.Rating,
			Position:  p.Position,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	return enc.Close()
}

// SaveFile writes players to path as a YAML roster.
func SaveFile(path string, players []model.Player) error {
	var buf bytes.Buffer
	if err := Save(&buf, players); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), rosterFileMode); err != nil {
		return fmt.Errorf("write roster: %w", err)
	}
	return nil
}
