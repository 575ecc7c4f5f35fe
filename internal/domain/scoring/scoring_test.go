package scoring_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/twrightsman/wall-of-shame/internal/domain/model"
	"github.com/twrightsman/wall-of-shame/internal/domain/scoring"
)

func TestScore(t *testing.T) {
	Convey("Given the shame formula", t, func() {
		Convey("When a process has non-negative niceness", func() {
			p := model.Proc{Username: "alice", Name: "make", Nice: 5, LastCPU: 2}

			Convey("Then the score is (20 - nice) * last core", func() {
				So(scoring.Score(p), ShouldEqual, 30)
			})
		})

		Convey("When a process has niceness zero on core zero", func() {
			p := model.Proc{Username: "alice", Name: "make", Nice: 0, LastCPU: 0}

			Convey("Then the score is zero", func() {
				So(scoring.Score(p), ShouldEqual, 0)
			})
		})

		Convey("When a process has negative niceness", func() {
			p := model.Proc{Username: "alice", Name: "make", Nice: -5, LastCPU: 3}

			Convey("Then it contributes zero, never a negative score", func() {
				So(scoring.Score(p), ShouldEqual, 0)
			})
		})
	})
}

func TestFilter(t *testing.T) {
	Convey("Given a filter ignoring root and bash", t, func() {
		f := scoring.NewFilter([]string{"root"}, []string{"bash"})

		Convey("When a process belongs to an ignored user", func() {
			p := model.Proc{Username: "root", Name: "make", Nice: 5, LastCPU: 2}

			Convey("Then it is excluded regardless of other fields", func() {
				So(f.Excludes(p), ShouldBeTrue)
			})
		})

		Convey("When a process has an ignored executable name", func() {
			p := model.Proc{Username: "alice", Name: "bash", Nice: 5, LastCPU: 2}

			Convey("Then it is excluded", func() {
				So(f.Excludes(p), ShouldBeTrue)
			})
		})

		Convey("When a process runs at elevated priority", func() {
			p := model.Proc{Username: "alice", Name: "make", Nice: -1, LastCPU: 2}

			Convey("Then it is excluded from scoring", func() {
				So(f.Excludes(p), ShouldBeTrue)
			})
		})

		Convey("When a process matches no exclusion", func() {
			p := model.Proc{Username: "alice", Name: "make", Nice: 0, LastCPU: 2}

			Convey("Then it is scored", func() {
				So(f.Excludes(p), ShouldBeFalse)
			})
		})

		Convey("When the filter lists carry whitespace", func() {
			padded := scoring.NewFilter([]string{" root ", ""}, []string{" bash"})

			Convey("Then names are trimmed before matching", func() {
				So(padded.Excludes(model.Proc{Username: "root", Name: "make"}), ShouldBeTrue)
				So(padded.Excludes(model.Proc{Username: "alice", Name: "bash"}), ShouldBeTrue)
			})
		})
	})
}

func TestScoreSnapshot(t *testing.T) {
	Convey("Given a snapshot with several processes", t, func() {
		f := scoring.NewFilter([]string{"root"}, []string{"bash"})
		procs := []model.Proc{
			{Username: "alice", Name: "make", Nice: 0, LastCPU: 1},  // 20
			{Username: "alice", Name: "gcc", Nice: 10, LastCPU: 3},  // 30
			{Username: "bob", Name: "python", Nice: 19, LastCPU: 4}, // 4
			{Username: "root", Name: "systemd", Nice: 5, LastCPU: 2},
			{Username: "carol", Name: "bash", Nice: 0, LastCPU: 7},
			{Username: "dave", Name: "nice-guy", Nice: -5, LastCPU: 9},
		}

		shame := scoring.ScoreSnapshot(procs, f)

		Convey("Then scores for the same user are summed into one entry", func() {
			So(shame["alice"], ShouldEqual, 50)
		})

		Convey("Then each surviving user appears exactly once", func() {
			So(len(shame), ShouldEqual, 2)
			So(shame["bob"], ShouldEqual, 4)
		})

		Convey("Then ignored users contribute nothing", func() {
			_, ok := shame["root"]
			So(ok, ShouldBeFalse)
		})

		Convey("Then ignored executable names contribute nothing", func() {
			_, ok := shame["carol"]
			So(ok, ShouldBeFalse)
		})

		Convey("Then negative niceness contributes nothing", func() {
			_, ok := shame["dave"]
			So(ok, ShouldBeFalse)
		})
	})
}
