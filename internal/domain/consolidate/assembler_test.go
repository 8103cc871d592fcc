package consolidate_test

import (
	"errors"
	"testing"

	"github.com/gradefold/gradefold/internal/domain/assignment"
	"github.com/gradefold/gradefold/internal/domain/consolidate"
	"github.com/gradefold/gradefold/internal/domain/coursetotal"
	"github.com/gradefold/gradefold/internal/domain/roster"
	"github.com/gradefold/gradefold/internal/domain/table"
	"github.com/smartystreets/goconvey/convey"
)

func buildInputs(t *testing.T) (*roster.Roster, *coursetotal.Resolver, []*assignment.Parsed) {
	t.Helper()

	course := &table.Table{
		Headers: []string{
			"First name", "Last name",
			"Essay (Percentage)", "Essay (Letter)",
			"Quiz (Percentage)", "Quiz (Letter)",
			"Course total (Percentage)", "Course total (Letter)",
		},
		Rows: []table.Row{
			{table.Text("Ada"), table.Text("Lovelace"), table.Number(90), table.Text("A"), table.Number(80), table.Text("B"), table.Number(88), table.Text("B+")},
			{table.Text("Grace"), table.Text("Hopper"), table.Number(95), table.Text("A"), table.Missing(), table.Missing(), table.Number(92), table.Text("A-")},
		},
	}

	export := func(title string, students ...[2]string) *table.Table {
		raw := &table.Table{Rows: []table.Row{
			{table.Text("Course")},
			{table.Text(title)},
			{table.Text("First name"), table.Text("Last name"), table.Text("Definition"), table.Text("Definition")},
		}}
		for _, s := range students {
			raw.Rows = append(raw.Rows, table.Row{table.Text(s[0]), table.Text(s[1]), table.Number(4), table.Number(5)})
		}
		return raw
	}

	essay := export("Assignment: Essay", [2]string{"Ada", "Lovelace"}, [2]string{"Grace", "Hopper"})
	quiz := export("Quiz", [2]string{"Ada", "Lovelace"}) // Grace skipped the quiz

	ros, err := roster.Build(course, []*table.Table{essay, quiz})
	if err != nil {
		t.Fatal(err)
	}
	resolver := coursetotal.NewResolver(course)

	var parsed []*assignment.Parsed
	for _, raw := range []*table.Table{essay, quiz} {
		p, err := assignment.Parse(raw, resolver, ros)
		if err != nil {
			t.Fatal(err)
		}
		parsed = append(parsed, p)
	}
	return ros, resolver, parsed
}

func TestAssemble(t *testing.T) {
	convey.Convey("Given parsed assignments and course totals", t, func() {
		ros, resolver, parsed := buildInputs(t)
		perc, letter := resolver.TotalsFor(ros)

		out, err := consolidate.Assemble(parsed, ros, perc, letter, "Intro to Computing")
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then the layout is names, blocks in input order, course totals", func() {
			convey.So(out.CourseName, convey.ShouldEqual, "Intro to Computing")
			convey.So(out.Headers[0], convey.ShouldEqual, "First name")
			convey.So(out.Headers[1], convey.ShouldEqual, "Last name")
			// each block: 2 criteria + total + percentage + letter = 5 columns
			convey.So(len(out.Headers), convey.ShouldEqual, 2+5+5+2)
			convey.So(out.Headers[len(out.Headers)-2], convey.ShouldEqual, "Course total - 100")
			convey.So(out.Headers[len(out.Headers)-1], convey.ShouldEqual, "Course total - Letter")
		})

		convey.Convey("Then sections cover the layout contiguously", func() {
			convey.So(len(out.Sections), convey.ShouldEqual, 4)
			convey.So(out.Sections[0], convey.ShouldResemble, consolidate.Section{Label: "Students", Start: 0, End: 1})
			convey.So(out.Sections[1], convey.ShouldResemble, consolidate.Section{Label: "Essay", Start: 2, End: 6})
			convey.So(out.Sections[2], convey.ShouldResemble, consolidate.Section{Label: "Quiz", Start: 7, End: 11})
			convey.So(out.Sections[3], convey.ShouldResemble, consolidate.Section{Label: "Course Total", Start: 12, End: 13})
		})

		convey.Convey("Then rows preserve roster order with per-block data", func() {
			convey.So(len(out.Rows), convey.ShouldEqual, 2)
			convey.So(out.Rows[0][0].String(), convey.ShouldEqual, "Ada")
			convey.So(out.Rows[1][0].String(), convey.ShouldEqual, "Grace")

			convey.Convey("And a student absent from one assignment has an empty block there", func() {
				grace := out.Rows[1]
				for col := 7; col <= 11; col++ {
					convey.So(grace[col].IsMissing(), convey.ShouldBeTrue)
				}
				// but the essay block is populated
				total, ok := grace[4].Float()
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(total, convey.ShouldEqual, 9.0)
			})
		})

		convey.Convey("When the course totals are misaligned", func() {
			_, err := consolidate.Assemble(parsed, ros, perc[:1], letter, "X")
			convey.So(errors.Is(err, consolidate.ErrMisaligned), convey.ShouldBeTrue)
		})
	})
}
