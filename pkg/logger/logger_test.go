package logger_test

import (
	"context"
	"testing"

	"github.com/gradefold/gradefold/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	convey.Convey("Given an initialized global logger", t, func() {
		convey.So(logger.Init(), convey.ShouldBeNil)
		ctx := context.Background()

		convey.Convey("When fetching and using the global instance", func() {
			l := logger.Get()
			convey.So(l, convey.ShouldNotBeNil)

			convey.Convey("Then logging at each level does not panic", func() {
				convey.So(func() {
					l.Debug(ctx, "debug message", logger.String("k", "v"))
					l.Info(ctx, "info message", logger.Int("n", 1))
					l.Warn(ctx, "warn message", logger.Float64("f", 1.5))
					l.Error(ctx, "error message", logger.Any("x", struct{}{}))
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When deriving a named logger", func() {
			l := logger.Named("pipeline")
			convey.So(l, convey.ShouldNotBeNil)
			convey.So(func() { l.Info(ctx, "named") }, convey.ShouldNotPanic)
		})

		convey.Convey("When setting levels from strings", func() {
			convey.So(logger.SetLevelString("debug"), convey.ShouldBeNil)
			convey.So(logger.SetLevelString("WARNING"), convey.ShouldBeNil)
			convey.So(logger.SetLevelString(""), convey.ShouldBeNil)
			convey.So(logger.SetLevelString("loud"), convey.ShouldNotBeNil)
		})
	})
}
