package roster_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/teamgen/internal/domain/model"
	"github.com/okian/teamgen/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func squad() []model.Player {
	return []model.Player{
		{ID: "1", FirstName: "Ana", LastName: "Silva", Rating: 7.4},
		{ID: "2", FirstName: "Bruno", LastName: "Costa", Rating: 6.1},
		{ID: "3", FirstName: "Sticks", LastName: "Mendes", Rating: 5.8},
		{ID: "4", FirstName: "Bruno", LastName: "Alves", Rating: 8.0},
		{ID: "5", FirstName: "Jo", LastName: "Reis", Rating: 4.9},
	}
}

func TestParseList(t *testing.T) {
	Convey("Given a numbered sign-up list with a waiting list", t, func() {
		text := "Friday futsal 20:00\n1. Ana\n2.Bruno Costa\n 3.  Sticks \u2060\n\nWaiting list:\n4. Jo"

		Convey("When it is parsed", func() {
			names := roster.ParseList(text)

			Convey("Then only numbered names before the waiting list remain", func() {
				So(names, ShouldResemble, []string{"Ana", "Bruno Costa", "Sticks"})
			})
		})
	})

	Convey("Given a plain comma and newline separated list", t, func() {
		text := "Ana, Bruno\n\nSticks,,  Jo  "

		Convey("When it is parsed", func() {
			names := roster.ParseList(text)

			Convey("Then each non-empty name is returned", func() {
				So(names, ShouldResemble, []string{"Ana", "Bruno", "Sticks", "Jo"})
			})
		})
	})

	Convey("Given zero-width characters around names", t, func() {
		names := roster.ParseList("1. \u200BAna\uFEFF\n2. \u200D")

		Convey("Then they are stripped and empty names dropped", func() {
			So(names, ShouldResemble, []string{"Ana"})
		})
	})

	Convey("Given empty input", t, func() {
		So(roster.ParseList("   \n"), ShouldBeEmpty)
	})
}

func TestMatcher_Find(t *testing.T) {
	Convey("Given a matcher over the squad", t, func() {
		m := roster.NewMatcher(squad())

		cases := []struct {
			in   string
			want string
		}{
			{"ana silva", "1"},        // exact full name
			{"BRUNO ALVES", "4"},      // full name beats first name
			{"bruno", "2"},            // first name, roster order wins
			{"costa", "2"},            // partial inside full name
			{"Sticks the keeper 🧤", "3"}, // input contains first name
		}
		for _, c := range cases {
			Convey("When looking up "+c.in, func() {
				p, ok := m.Find(c.in)

				Convey("Then it resolves to player "+c.want, func() {
					So(ok, ShouldBeTrue)
					So(p.ID, ShouldEqual, c.want)
				})
			})
		}

		Convey("When the input is too short for a partial match", func() {
			_, ok := m.Find("ilv")

			Convey("Then nothing matches", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When the only hit is a first name of two letters", func() {
			_, ok := m.Find("jojo")

			Convey("Then the reverse match is skipped", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When the name is unknown or blank", func() {
			_, ok1 := m.Find("Zed")
			_, ok2 := m.Find("  ")

			Convey("Then nothing matches", func() {
				So(ok1, ShouldBeFalse)
				So(ok2, ShouldBeFalse)
			})
		})
	})
}

func TestSelection(t *testing.T) {
	Convey("Given a selection capped at three", t, func() {
		s := roster.NewSelection(3)
		players := squad()

		Convey("When players are added", func() {
			added, err := s.Add(players[0])
			So(err, ShouldBeNil)
			So(added, ShouldBeTrue)

			Convey("Then a duplicate is ignored", func() {
				again, err := s.Add(players[0])
				So(err, ShouldBeNil)
				So(again, ShouldBeFalse)
				So(s.Len(), ShouldEqual, 1)
			})

			Convey("Then the cap is enforced", func() {
				_, _ = s.Add(players[1])
				_, _ = s.Add(players[2])
				_, err := s.Add(players[3])
				So(errors.Is(err, roster.ErrSelectionFull), ShouldBeTrue)
				So(s.Full(), ShouldBeTrue)
				So(s.Len(), ShouldEqual, 3)
			})
		})

		Convey("When a player is toggled twice", func() {
			on, err := s.Toggle(players[1])
			So(err, ShouldBeNil)
			off, err := s.Toggle(players[1])
			So(err, ShouldBeNil)

			Convey("Then it ends up deselected", func() {
				So(on, ShouldBeTrue)
				So(off, ShouldBeFalse)
				So(s.Len(), ShouldEqual, 0)
			})
		})

		Convey("When a middle player is removed", func() {
			for _, p := range players[:3] {
				_, _ = s.Add(p)
			}
			So(s.Remove("2"), ShouldBeTrue)
			So(s.Remove("2"), ShouldBeFalse)

			Convey("Then the order of the rest is kept", func() {
				got := s.Players()
				So(len(got), ShouldEqual, 2)
				So(got[0].ID, ShouldEqual, "1")
				So(got[1].ID, ShouldEqual, "3")
			})
		})

		Convey("When the returned players are modified", func() {
			_, _ = s.Add(players[0])
			got := s.Players()
			got[0].Rating = 0

			Convey("Then the selection is unchanged", func() {
				So(s.Players()[0].Rating, ShouldEqual, 7.4)
			})
		})
	})
}

func TestSelection_ApplyList(t *testing.T) {
	Convey("Given a selection of four with one player preselected", t, func() {
		s := roster.NewSelection(4)
		_, _ = s.Add(squad()[0])
		m := roster.NewMatcher(squad())

		Convey("When a list is applied", func() {
			res := s.ApplyList(m, "1. Ana Silva\n2. Bruno\n3. Stranger\n4. costa\n5. Sticks\n6. Bruno Alves")

			Convey("Then matches are added once and leftovers reported", func() {
				ids := []string{}
				for _, p := range res.Added {
					ids = append(ids, p.ID)
				}
				So(ids, ShouldResemble, []string{"2", "3", "4"})
				So(res.Unmatched, ShouldResemble, []string{"Stranger"})
				So(res.Overflow, ShouldBeEmpty)
				So(s.Len(), ShouldEqual, 4)
			})
		})

		Convey("When the list overflows the cap", func() {
			res := s.ApplyList(m, "Bruno, Sticks, Bruno Alves, Jo Reis")

			Convey("Then the names that did not fit are reported", func() {
				So(len(res.Added), ShouldEqual, 3)
				So(res.Overflow, ShouldResemble, []string{"Jo Reis"})
			})
		})
	})
}

func TestGuests(t *testing.T) {
	Convey("Given a new guest", t, func() {
		g := roster.NewGuest("  Rui ", 6.5)

		Convey("Then it looks like a regular player with a synthetic id", func() {
			So(strings.HasPrefix(g.ID, "guest-"), ShouldBeTrue)
			So(g.FirstName, ShouldEqual, "Rui")
			So(g.DisplayName(), ShouldEqual, "Rui (Guest)")
			So(g.Rating, ShouldEqual, 6.5)
			So(g.Position, ShouldEqual, "guest")
			So(g.Guest, ShouldBeTrue)
		})

		Convey("And two guests never share an id", func() {
			So(roster.NewGuest("Rui", 6).ID, ShouldNotEqual, g.ID)
		})
	})

	Convey("Given guest specs", t, func() {
		Convey("When a rating is given", func() {
			g, err := roster.ParseGuest("Tiago=7.25", roster.DefaultGuestRating)
			So(err, ShouldBeNil)
			So(g.Rating, ShouldEqual, 7.25)
			So(g.FirstName, ShouldEqual, "Tiago")
		})

		Convey("When the rating is omitted", func() {
			g, err := roster.ParseGuest("Tiago", roster.DefaultGuestRating)
			So(err, ShouldBeNil)
			So(g.Rating, ShouldEqual, 6.0)
		})

		Convey("When the guest argument is malformed", func() {
			_, err1 := roster.ParseGuest("=7", 6)
			_, err2 := roster.ParseGuest("Tiago=high", 6)
			_, err3 := roster.ParseGuest("Tiago=NaN", 6)
			So(errors.Is(err1, roster.ErrInvalidGuest), ShouldBeTrue)
			So(errors.Is(err2, roster.ErrInvalidGuest), ShouldBeTrue)
			So(errors.Is(err3, roster.ErrInvalidGuest), ShouldBeTrue)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a YAML roster file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "roster.yaml")
		content := `
players:
  - id: "10"
    first_name: Ana
    last_name: Silva
    rating: 7.4
    position: pivot
  - id: "11"
    first_name: " Bruno "
    last_name: Costa
    rating: 6.1
`
		So(os.WriteFile(path, []byte(content), 0o600), ShouldBeNil)

		Convey("When it is loaded", func() {
			players, err := roster.LoadFile(path)

			Convey("Then players keep file order", func() {
				So(err, ShouldBeNil)
				So(len(players), ShouldEqual, 2)
				So(players[0], ShouldResemble, model.Player{ID: "10", FirstName: "Ana", LastName: "Silva", Rating: 7.4, Position: "pivot"})
				So(players[1].FirstName, ShouldEqual, "Bruno")
			})
		})
	})

	Convey("Given broken rosters", t, func() {
		Convey("Then an empty document is rejected", func() {
			_, err := roster.Load(strings.NewReader(""))
			So(errors.Is(err, roster.ErrEmptyRoster), ShouldBeTrue)
		})

		Convey("Then duplicate ids are rejected", func() {
			_, err := roster.Load(strings.NewReader("players:\n  - {id: \"1\", first_name: A}\n  - {id: \"1\", first_name: B}\n"))
			So(errors.Is(err, roster.ErrDuplicateID), ShouldBeTrue)
		})

		Convey("Then missing ids are rejected", func() {
			_, err := roster.Load(strings.NewReader("players:\n  - {first_name: A}\n"))
			So(errors.Is(err, roster.ErrInvalidRoster), ShouldBeTrue)
		})

		Convey("Then malformed YAML is rejected", func() {
			_, err := roster.Load(strings.NewReader("players: [\n"))
			So(errors.Is(err, roster.ErrInvalidRoster), ShouldBeTrue)
		})

		Convey("Then a missing file is an error", func() {
			_, err := roster.LoadFile(filepath.Join(t.TempDir(), "none.yaml"))
			So(err, ShouldNotBeNil)
		})
	})
}
