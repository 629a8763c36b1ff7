package oracle_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/okian/afcon/internal/adapters/repository"
	"github.com/okian/afcon/internal/domain/feature"
	"github.com/okian/afcon/internal/domain/model"
	"github.com/okian/afcon/internal/domain/oracle"
	"github.com/okian/afcon/internal/domain/teamref"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDistribution(t *testing.T) {
	Convey("Given outcome distributions", t, func() {
		Convey("Then a well-formed one validates", func() {
			So(oracle.Distribution{Win: 0.5, Draw: 0.3, Loss: 0.2}.Validate(), ShouldBeNil)
		})

		Convey("Then out-of-range or non-normalized ones do not", func() {
			So(oracle.Distribution{Win: 1.2, Draw: -0.1, Loss: -0.1}.Validate(), ShouldNotBeNil)
			So(oracle.Distribution{Win: 0.5, Draw: 0.3, Loss: 0.3}.Validate(), ShouldNotBeNil)
		})

		Convey("Then the strictly highest class wins", func() {
			So(oracle.Distribution{Win: 0.2, Draw: 0.5, Loss: 0.3}.Outcome(), ShouldEqual, model.Draw)
			So(oracle.Distribution{Win: 0.2, Draw: 0.3, Loss: 0.5}.Outcome(), ShouldEqual, model.Loss)
		})

		Convey("Then exact ties resolve win over draw over loss", func() {
			third := 1.0 / 3.0
			So(oracle.Distribution{Win: third, Draw: third, Loss: third}.Outcome(), ShouldEqual, model.Win)
			So(oracle.Distribution{Win: 0.2, Draw: 0.4, Loss: 0.4}.Outcome(), ShouldEqual, model.Draw)
		})

		Convey("Then the winner name follows the outcome", func() {
			So(oracle.Distribution{Win: 0.6, Draw: 0.2, Loss: 0.2}.WinnerName("Égypte", "Algérie"), ShouldEqual, "Égypte")
			So(oracle.Distribution{Win: 0.2, Draw: 0.2, Loss: 0.6}.WinnerName("Égypte", "Algérie"), ShouldEqual, "Algérie")
			So(oracle.Distribution{Win: 0.2, Draw: 0.6, Loss: 0.2}.WinnerName("Égypte", "Algérie"), ShouldEqual, oracle.DrawSentinel)
		})
	})
}

func TestAdapterPredict(t *testing.T) {
	Convey("Given an adapter over a loaded bundle", t, func() {
		ctx := context.Background()
		deriver := feature.NewDeriver(repository.NewIndexStore(nil), teamref.New(), feature.LivePolicy())
		asm := feature.NewAssembler(deriver)
		v := asm.Assemble(ctx, feature.Fixture{
			Team1: "Égypte",
			Team2: "Algérie",
			AsOf:  time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC),
			Year:  2025,
		})

		Convey("When class scores differ only by intercept", func() {
			// ln 2 over the other two intercepts doubles the win share.
			dir := writeArtifacts(t, []float64{math.Log(2), 0, 0})
			b, err := oracle.LoadBundle(dir)
			So(err, ShouldBeNil)

			d, err := oracle.NewAdapter(b).Predict(ctx, v)

			Convey("Then the softmax shares come out as 1/2, 1/4, 1/4", func() {
				So(err, ShouldBeNil)
				So(d.Win, ShouldAlmostEqual, 0.5)
				So(d.Draw, ShouldAlmostEqual, 0.25)
				So(d.Loss, ShouldAlmostEqual, 0.25)
				So(d.Win+d.Draw+d.Loss, ShouldAlmostEqual, 1)
			})
		})

		Convey("When the vector does not match the persisted schema", func() {
			dir := writeArtifacts(t, []float64{0, 0, 0})
			b, err := oracle.LoadBundle(dir)
			So(err, ShouldBeNil)
			b.FeatureNames = b.FeatureNames[:5]

			_, err = oracle.NewAdapter(b).Predict(ctx, v)
			So(err, ShouldNotBeNil)
		})
	})
}
