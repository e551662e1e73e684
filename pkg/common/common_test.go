package common_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/pkgsweep/pkgsweep/pkg/common"
)

func TestCommon(t *testing.T) {
	Convey("test Contains()", t, func() {
		first := []string{"apple", "biscuit"}
		So(common.Contains(first, "apple"), ShouldBeTrue)
		So(common.Contains(first, "peach"), ShouldBeFalse)
		So(common.Contains([]string{}, "apple"), ShouldBeFalse)
		So(common.Contains([]int{1, 2}, 2), ShouldBeTrue)
	})

	Convey("test RemoveEmpty()", t, func() {
		So(common.RemoveEmpty([]string{" PV_1", "", "  ", "PV_2 "}), ShouldResemble, []string{"PV_1", "PV_2"})
		So(common.RemoveEmpty(nil), ShouldBeEmpty)
	})

	Convey("test IsContextDone()", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		So(common.IsContextDone(ctx), ShouldBeFalse)

		cancel()
		So(common.IsContextDone(ctx), ShouldBeTrue)
	})
}
