package feature_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/afcon/internal/adapters/repository"
	"github.com/okian/afcon/internal/domain/feature"
	"github.com/okian/afcon/internal/domain/model"
	"github.com/okian/afcon/internal/domain/teamref"
	. "github.com/smartystreets/goconvey/convey"
)

func at(year, month, dayOfMonth int) time.Time {
	return time.Date(year, time.Month(month), dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func snapshot() *repository.IndexStore {
	mk := func(id int, date time.Time, t1, t2 string, h, a int) model.Match {
		return model.Match{
			ID: id, Date: date, Team1: t1, Team2: t2,
			HomeScore: h, AwayScore: a,
			Result: model.DeriveOutcome(h, a),
			Year:   date.Year(),
		}
	}
	return repository.NewIndexStore([]model.Match{
		mk(1, at(2022, 1, 10), "Egypt", "Ghana", 3, 0),
		mk(2, at(2022, 6, 5), "Ghana", "Egypt", 0, 0),
		mk(3, at(2023, 1, 15), "Egypt", "Mali", 1, 2),
		mk(4, at(2023, 6, 20), "Egypt", "Ghana", 2, 1),
		mk(5, at(2024, 1, 12), "Senegal", "Egypt", 0, 1),
		mk(6, at(2024, 6, 8), "Egypt", "Algeria", 1, 1),
		mk(7, at(2025, 1, 5), "Algeria", "Egypt", 2, 0),
	})
}

func TestTeamForm(t *testing.T) {
	Convey("Given a deriver over the snapshot", t, func() {
		ctx := context.Background()
		d := feature.NewDeriver(snapshot(), teamref.New(), feature.TrainingPolicy())

		Convey("When deriving form before the last match", func() {
			form := d.TeamForm(ctx, "Egypt", at(2025, 1, 5))

			Convey("Then the five most recent prior matches count", func() {
				// D, L, W, W, D over 2022-06 .. 2024-06
				So(form.Matches, ShouldEqual, 5)
				So(form.Points, ShouldEqual, 8)
				So(form.GoalDiff, ShouldAlmostEqual, 0.2)
			})

			Convey("Then the match on the cut date itself is excluded", func() {
				later := d.TeamForm(ctx, "Egypt", at(2025, 1, 6))
				So(later.Points, ShouldEqual, 7)
				So(later.GoalDiff, ShouldAlmostEqual, -0.2)
			})
		})

		Convey("When the team has no prior history", func() {
			form := d.TeamForm(ctx, "Tanzania", at(2025, 1, 1))

			Convey("Then the neutral defaults apply", func() {
				So(form.Matches, ShouldEqual, 0)
				So(form.Points, ShouldEqual, 7.5)
				So(form.GoalDiff, ShouldEqual, 0)
			})
		})
	})
}

func TestHeadToHead(t *testing.T) {
	Convey("Given a deriver over the snapshot", t, func() {
		ctx := context.Background()
		d := feature.NewDeriver(snapshot(), teamref.New(), feature.TrainingPolicy())

		Convey("When the pair has shared history", func() {
			h2h := d.HeadToHead(ctx, "Egypt", "Ghana", at(2024, 1, 1))

			Convey("Then the rate is wins over encounters from team1's side", func() {
				So(h2h.Total, ShouldEqual, 3)
				So(h2h.WinRate, ShouldAlmostEqual, 2.0/3.0)
				So(h2h.Defaulted, ShouldBeFalse)
			})
		})

		Convey("When no shared history exists before the cut", func() {
			h2h := d.HeadToHead(ctx, "Egypt", "Ghana", at(2022, 1, 1))

			Convey("Then the neutral default rate applies", func() {
				So(h2h.Total, ShouldEqual, 0)
				So(h2h.WinRate, ShouldEqual, 0.33)
				So(h2h.Defaulted, ShouldBeTrue)
			})
		})
	})
}

func TestStageFlag(t *testing.T) {
	Convey("Given a training-policy deriver", t, func() {
		d := feature.NewDeriver(snapshot(), teamref.New(), feature.TrainingPolicy())

		Convey("Then main-tournament names flag as 1", func() {
			So(d.StageFlag("African Cup of Nations"), ShouldEqual, 1)
			So(d.StageFlag("CAN 2023"), ShouldEqual, 1)
		})

		Convey("Then qualifiers and friendlies flag as 0", func() {
			So(d.StageFlag("African Cup of Nations qualification"), ShouldEqual, 0)
			So(d.StageFlag("CAN Qualifiers"), ShouldEqual, 0)
			So(d.StageFlag("Friendly"), ShouldEqual, 0)
		})

		Convey("Then an empty name follows the policy assumption", func() {
			So(d.StageFlag(""), ShouldEqual, 0)
			live := feature.NewDeriver(snapshot(), teamref.New(), feature.LivePolicy())
			So(live.StageFlag(""), ShouldEqual, 1)
		})
	})
}

func TestCANWinRate(t *testing.T) {
	Convey("Given the two policies", t, func() {
		refs := teamref.New(teamref.WithWinRates(map[string]float64{"Égypte": 0.62}))

		Convey("Then the training policy reads the exact table", func() {
			d := feature.NewDeriver(snapshot(), refs, feature.TrainingPolicy())
			So(d.CANWinRate("Égypte"), ShouldEqual, 0.62)
			So(d.CANWinRate("Tanzanie"), ShouldEqual, 0.35)
		})

		Convey("Then the live policy approximates from titles", func() {
			d := feature.NewDeriver(snapshot(), refs, feature.LivePolicy())
			So(d.CANWinRate("Égypte"), ShouldAlmostEqual, 0.4+0.05*7)
			So(d.CANWinRate("Tanzanie"), ShouldAlmostEqual, 0.4)
		})
	})
}

func TestAssemble(t *testing.T) {
	Convey("Given an assembler with no shared pair history", t, func() {
		ctx := context.Background()
		d := feature.NewDeriver(repository.NewIndexStore(nil), teamref.New(), feature.LivePolicy())
		asm := feature.NewAssembler(d)

		Convey("When assembling a bracket fixture", func() {
			v := asm.Assemble(ctx, feature.Fixture{
				Team1: "Égypte",
				Team2: "Algérie",
				AsOf:  at(2025, 12, 1),
				Year:  2025,
			})

			Convey("Then the static context features carry the table values", func() {
				val := func(name string) float64 {
					x, ok := v.Value(name)
					So(ok, ShouldBeTrue)
					return x
				}
				So(val("fifa_rank_diff"), ShouldEqual, -15)
				So(val("titles_advantage"), ShouldEqual, 5)
				So(val("h2h_total_matches"), ShouldEqual, 0)
				So(val("h2h_team1_win_rate"), ShouldEqual, 0.33)
				So(val("h2h_dominance"), ShouldAlmostEqual, -0.17)
				So(val("stage_group"), ShouldEqual, 1)
				So(val("team1_is_host"), ShouldEqual, 0)
				So(val("days_since_last_match_team1"), ShouldEqual, 4)
			})

			Convey("Then the vector aligns against the canonical order", func() {
				ordered, err := v.Ordered(feature.Names)
				So(err, ShouldBeNil)
				So(len(ordered), ShouldEqual, 20)
			})

			Convey("Then a foreign schema is rejected", func() {
				_, err := v.Ordered([]string{"fifa_rank_diff"})
				So(err, ShouldNotBeNil)
				_, err = v.Ordered(append([]string{"bogus"}, feature.Names[1:]...))
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When the host nation appears", func() {
			v := asm.Assemble(ctx, feature.Fixture{
				Team1: "Maroc",
				Team2: "Tanzanie",
				AsOf:  at(2025, 12, 1),
				Year:  2025,
			})
			x, _ := v.Value("team1_is_host")
			So(x, ShouldEqual, 1)
		})
	})
}

func TestAcronymNameHistory(t *testing.T) {
	Convey("Given loaded history for a team whose name title-casing changes", t, func() {
		ctx := context.Background()
		body := "date,team1,team2,home_score,away_score,tournament,stage,specialWinConditions\n" +
			"2023-01-10,DR Congo,Zambia,2,0,African Cup of Nations,Group A,\n" +
			"2023-06-15,Tanzania,DR Congo,1,1,Friendly,,\n"
		path := filepath.Join(t.TempDir(), "matches.csv")
		So(os.WriteFile(path, []byte(body), 0o600), ShouldBeNil)
		matches, err := repository.LoadCSV(path)
		So(err, ShouldBeNil)

		d := feature.NewDeriver(repository.NewIndexStore(matches), teamref.New(), feature.LivePolicy())
		asm := feature.NewAssembler(d)

		Convey("When assembling from the display-locale name", func() {
			v := asm.Assemble(ctx, feature.Fixture{
				Team1: "RD Congo",
				Team2: "Tanzanie",
				AsOf:  at(2024, 1, 1),
				Year:  2025,
			})

			Convey("Then form reflects the stored matches, not the neutral defaults", func() {
				points, ok := v.Value("team1_last5_points")
				So(ok, ShouldBeTrue)
				// W 2-0, D 1-1 away
				So(points, ShouldEqual, 4)
				gd, _ := v.Value("team1_last5_goal_diff")
				So(gd, ShouldEqual, 1)
			})

			Convey("Then the shared meeting is found either orientation", func() {
				total, _ := v.Value("h2h_total_matches")
				So(total, ShouldEqual, 1)
				rate, _ := v.Value("h2h_team1_win_rate")
				So(rate, ShouldEqual, 0)
			})
		})
	})
}
