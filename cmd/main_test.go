package main

import (
	"context"
	"os"
	"testing"

	"github.com/okian/afcon/internal/adapters/http/api"
	app "github.com/okian/afcon/internal/app"
	"github.com/okian/afcon/internal/config"
	"github.com/okian/afcon/pkg/logger"
	"github.com/okian/afcon/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			// Test with environment variables
			_ = os.Setenv("AFCON_ADDR", ":8080")
			_ = os.Setenv("AFCON_TOURNAMENT_YEAR", "2025")
			_ = os.Setenv("AFCON_SIM_PARALLELISM", "8")
			defer func() {
				_ = os.Unsetenv("AFCON_ADDR")
				_ = os.Unsetenv("AFCON_TOURNAMENT_YEAR")
				_ = os.Unsetenv("AFCON_SIM_PARALLELISM")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.TournamentYear, convey.ShouldEqual, 2025)
				convey.So(cfg.SimParallelism, convey.ShouldEqual, 8)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithModelDir("models"),
					app.WithTournamentYear(2025),
					app.WithSimParallelism(8),
					app.WithCacheSize(1024),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestServiceOptionsMapping(t *testing.T) {
	convey.Convey("Given a loaded configuration", t, func() {
		cfg := config.New()
		log := logger.Get()

		convey.Convey("When mapping it onto service options", func() {
			opts := serviceOptions(cfg, log)

			convey.Convey("Then every option should be produced", func() {
				convey.So(len(opts), convey.ShouldEqual, 10)
				convey.So(app.New(opts...), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the training policy is configured", func() {
			cfg.FeaturePolicy = config.PolicyTraining

			convey.Convey("Then option mapping should not panic", func() {
				convey.So(func() { serviceOptions(cfg, log) }, convey.ShouldNotPanic)
			})
		})
	})
}
