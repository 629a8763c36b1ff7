package model_test

import (
	"testing"
	"time"

	"github.com/okian/afcon/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDeriveOutcome(t *testing.T) {
	Convey("Given final scores", t, func() {
		Convey("When the home side scores more", func() {
			So(model.DeriveOutcome(3, 1), ShouldEqual, model.Win)
		})
		Convey("When the away side scores more", func() {
			So(model.DeriveOutcome(0, 2), ShouldEqual, model.Loss)
		})
		Convey("When the scores are level", func() {
			So(model.DeriveOutcome(1, 1), ShouldEqual, model.Draw)
		})
	})
}

func TestMatchPerspective(t *testing.T) {
	Convey("Given a finished match Egypt 2-1 Ghana", t, func() {
		m := &model.Match{
			Date:      time.Date(2019, 7, 1, 0, 0, 0, 0, time.UTC),
			Team1:     "Egypt",
			Team2:     "Ghana",
			HomeScore: 2,
			AwayScore: 1,
			Result:    model.Win,
		}

		Convey("Then both sides are involved", func() {
			So(m.Involves("Egypt"), ShouldBeTrue)
			So(m.Involves("Ghana"), ShouldBeTrue)
			So(m.Involves("Mali"), ShouldBeFalse)
		})

		Convey("Then points follow each side's perspective", func() {
			So(m.PointsFor("Egypt"), ShouldEqual, 3)
			So(m.PointsFor("Ghana"), ShouldEqual, 0)
			So(m.PointsFor("Mali"), ShouldEqual, 0)
		})

		Convey("Then goal differential follows each side's perspective", func() {
			So(m.GoalDiffFor("Egypt"), ShouldEqual, 1)
			So(m.GoalDiffFor("Ghana"), ShouldEqual, -1)
		})

		Convey("Then only the home side won it", func() {
			So(m.WonBy("Egypt"), ShouldBeTrue)
			So(m.WonBy("Ghana"), ShouldBeFalse)
		})
	})

	Convey("Given a drawn match", t, func() {
		m := &model.Match{
			Team1:     "Mali",
			Team2:     "Benin",
			HomeScore: 0,
			AwayScore: 0,
			Result:    model.Draw,
		}

		Convey("Then both sides take one point and nobody won", func() {
			So(m.PointsFor("Mali"), ShouldEqual, 1)
			So(m.PointsFor("Benin"), ShouldEqual, 1)
			So(m.WonBy("Mali"), ShouldBeFalse)
			So(m.WonBy("Benin"), ShouldBeFalse)
		})
	})

	Convey("Given an away win", t, func() {
		m := &model.Match{
			Team1:     "Sudan",
			Team2:     "Senegal",
			HomeScore: 0,
			AwayScore: 3,
			Result:    model.Loss,
		}

		Convey("Then the away side takes the points", func() {
			So(m.PointsFor("Senegal"), ShouldEqual, 3)
			So(m.PointsFor("Sudan"), ShouldEqual, 0)
			So(m.WonBy("Senegal"), ShouldBeTrue)
			So(m.GoalDiffFor("Senegal"), ShouldEqual, 3)
			So(m.GoalDiffFor("Sudan"), ShouldEqual, -3)
		})
	})
}
