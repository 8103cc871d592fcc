package roster_test

import (
	"errors"
	"testing"

	"github.com/gradefold/gradefold/internal/domain/roster"
	"github.com/gradefold/gradefold/internal/domain/table"
	"github.com/smartystreets/goconvey/convey"
)

func courseTable() *table.Table {
	return &table.Table{
		Headers: []string{"First name", "Last name", "Course total (Percentage)"},
		Rows: []table.Row{
			{table.Text("Ada"), table.Text("Lovelace"), table.Number(91)},
			{table.Text("Grace"), table.Text("Hopper"), table.Number(88)},
		},
	}
}

func assignmentTable(names ...[2]string) *table.Table {
	t := &table.Table{
		Rows: []table.Row{
			{table.Text("Some Course")},
			{table.Text("Assignment: Essay 20%")},
			{table.Text("First name"), table.Text("Last name"), table.Text("Definition")},
		},
	}
	for _, n := range names {
		t.Rows = append(t.Rows, table.Row{table.Text(n[0]), table.Text(n[1]), table.Number(5)})
	}
	return t
}

func TestBuild(t *testing.T) {
	convey.Convey("Given a course table and assignment exports", t, func() {
		course := courseTable()

		convey.Convey("When all sources overlap and add new students", func() {
			a1 := assignmentTable([2]string{"Ada", "Lovelace"}, [2]string{"Alan", "Turing"})
			a2 := assignmentTable([2]string{"Grace", "Hopper"}, [2]string{"Alan", "Turing"})

			r, err := roster.Build(course, []*table.Table{a1, a2})

			convey.Convey("Then the roster is deduplicated in first-seen order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(r.Len(), convey.ShouldEqual, 3)
				convey.So(r.Keys()[0], convey.ShouldResemble, roster.StudentKey{First: "Ada", Last: "Lovelace"})
				convey.So(r.Keys()[1], convey.ShouldResemble, roster.StudentKey{First: "Grace", Last: "Hopper"})
				convey.So(r.Keys()[2], convey.ShouldResemble, roster.StudentKey{First: "Alan", Last: "Turing"})
			})

			convey.Convey("And index lookup reflects that order", func() {
				convey.So(err, convey.ShouldBeNil)
				i, ok := r.Index(roster.StudentKey{First: "Alan", Last: "Turing"})
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(i, convey.ShouldEqual, 2)
				_, ok = r.Index(roster.StudentKey{First: "Nobody", Last: "Here"})
				convey.So(ok, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When a row matches the exclusion predicate", func() {
			a := assignmentTable([2]string{"Raffi", "Example"}, [2]string{"Alan", "Turing"})
			r, err := roster.Build(course, []*table.Table{a},
				roster.WithExclusion(table.ExcludeContaining("raffi")),
			)

			convey.Convey("Then the excluded student never appears", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(r.Len(), convey.ShouldEqual, 3)
				_, ok := r.Index(roster.StudentKey{First: "Raffi", Last: "Example"})
				convey.So(ok, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When names are padded or half-empty", func() {
			a := assignmentTable([2]string{"  Ada  ", " Lovelace "}, [2]string{"Solo", ""})
			r, err := roster.Build(course, []*table.Table{a})

			convey.Convey("Then keys are trimmed and half-empty pairs are dropped", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(r.Len(), convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When an assignment lacks the header marker", func() {
			broken := &table.Table{Rows: []table.Row{
				{table.Text("no header here")},
			}}
			_, err := roster.Build(course, []*table.Table{broken})

			convey.Convey("Then building fails with the schema sentinel", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, table.ErrHeaderRowNotFound), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a custom header marker is configured", func() {
			a := &table.Table{Rows: []table.Row{
				{table.Text("preamble")},
				{table.Text("Vorname"), table.Text("Nachname")},
				{table.Text("Ada"), table.Text("Byron")},
			}}
			r, err := roster.Build(course, []*table.Table{a}, roster.WithHeaderMarker("Vorname"))

			convey.Convey("Then the marker drives header discovery", func() {
				convey.So(err, convey.ShouldBeNil)
				_, ok := r.Index(roster.StudentKey{First: "Ada", Last: "Byron"})
				convey.So(ok, convey.ShouldBeTrue)
			})
		})
	})
}
