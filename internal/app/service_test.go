package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/gradefold/gradefold/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func writeWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue("Sheet1", ref, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

func TestServiceRun(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}

	Convey("Given a complete set of exports on disk", t, func() {
		dir := t.TempDir()
		writeWorkbook(t, filepath.Join(dir, "00-Course Total.xlsx"), [][]any{
			{
				"First name", "Last name",
				"Assignment: Homework 1 - 40% (Percentage)", "Assignment: Homework 1 - 40% (Letter)",
				"Course total (Percentage)", "Course total (Letter)",
			},
			{"Ada", "Lovelace", 90, "A", 88.5, "B+"},
			{"Alan", "Turing", "75%", "B", 70, "C"},
			{"Raffi", "Helper", 0, "F", 0, "F"},
		})
		writeWorkbook(t, filepath.Join(dir, "01-Homework 1.xlsx"), [][]any{
			{"Intro to Testing"},
			{"Assignment: Homework 1 - 40%"},
			{},
			{"First name", "Last name", "Username", "Definition", "Definition"},
			{"Ada", "Lovelace", "u1", 5, 4},
			{" Alan ", "Turing", "u2", 3, "-"},
			{"Raffi", "Helper", "u3", 1, 1},
		})
		rubric := "Rigor,Clarity\n"
		So(os.WriteFile(filepath.Join(dir, "Homework 1 - Rubric Percentage.csv"), []byte(rubric), 0o600), ShouldBeNil)

		out := filepath.Join(dir, "out", "consolidated.xlsx")
		So(os.MkdirAll(filepath.Dir(out), 0o755), ShouldBeNil)

		svc := New(
			WithInputDir(dir),
			WithOutput(out),
			WithWorkerCount(2),
			WithExclusionTerms([]string{"Raffi"}),
			WithPDFExport(false),
		)

		Convey("When the pipeline runs", func() {
			err := svc.Run(context.Background())
			So(err, ShouldBeNil)

			f, err := excelize.OpenFile(out)
			So(err, ShouldBeNil)
			defer f.Close()
			cell := func(ref string) string {
				v, err := f.GetCellValue("Consolidated", ref, excelize.Options{RawCellValue: true})
				So(err, ShouldBeNil)
				return v
			}

			Convey("Then the banner names the course", func() {
				So(cell("A1"), ShouldStartWith, "Intro to Testing")
			})

			Convey("Then the header row carries rubric labels and grade columns", func() {
				So(cell("A3"), ShouldEqual, "First name")
				So(cell("B3"), ShouldEqual, "Last name")
				So(cell("C3"), ShouldEqual, "Rigor")
				So(cell("D3"), ShouldEqual, "Clarity")
				So(cell("E3"), ShouldEqual, "Total - 40%")
				So(cell("F3"), ShouldEqual, "Total - 100")
				So(cell("G3"), ShouldEqual, "Total - Letter")
				So(cell("H3"), ShouldEqual, "Course total - 100")
				So(cell("I3"), ShouldEqual, "Course total - Letter")
			})

			Convey("Then the first student row is fully populated", func() {
				So(cell("A4"), ShouldEqual, "Ada")
				So(cell("C4"), ShouldEqual, "5")
				So(cell("D4"), ShouldEqual, "4")
				So(cell("E4"), ShouldEqual, "9")
				So(cell("F4"), ShouldEqual, "90")
				So(cell("G4"), ShouldEqual, "A")
				So(cell("H4"), ShouldEqual, "88.5")
				So(cell("I4"), ShouldEqual, "B+")
			})

			Convey("Then non-numeric marks stay missing and percentages are normalized", func() {
				So(cell("A5"), ShouldEqual, "Alan")
				So(cell("C5"), ShouldEqual, "3")
				So(cell("D5"), ShouldEqual, "")
				So(cell("E5"), ShouldEqual, "3")
				So(cell("F5"), ShouldEqual, "75")
			})

			Convey("Then excluded students never reach the output", func() {
				So(cell("A6"), ShouldEqual, "")
			})
		})
	})

	Convey("Given a directory with no course-total workbook", t, func() {
		dir := t.TempDir()
		writeWorkbook(t, filepath.Join(dir, "01-Homework 1.xlsx"), [][]any{
			{"Intro to Testing"},
			{"Homework 1"},
			{"First name", "Last name", "Definition"},
			{"Ada", "Lovelace", 5},
		})

		svc := New(WithInputDir(dir), WithPDFExport(false))

		Convey("When the pipeline runs", func() {
			err := svc.Run(context.Background())

			Convey("Then the missing-course sentinel surfaces", func() {
				So(errors.Is(err, ErrNoCourseTotalFile), ShouldBeTrue)
			})
		})
	})
}
