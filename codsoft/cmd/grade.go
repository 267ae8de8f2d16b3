package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nehashinde/codsoft/codsoft/internal/fastcolor"
	"github.com/nehashinde/codsoft/codsoft/marksheet"
	"github.com/nehashinde/codsoft/grade"
)

var errNoReport = errors.New("please calculate result first")

var studentName string
var subjectArgs []string
var sheetFilePath string
var exportPath string
var gradeCSV bool

// gradeCmd represents the grade command
var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Calculate a student's total, average and grade",
	Long: `Calculate a student's total, average and grade from five subjects.

Subjects are given as "name:internal:external", or read from a mark
sheet file with --file ("-" reads standard input).`,
	Example: `  codsoft grade --name "Neha Shinde" -s Maths:25:65 -s Physics:28:60 \
    -s Chemistry:22:58 -s English:27:63 -s Biology:24:66
  codsoft grade --file sheets.txt --csv --export results.csv.br`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ev, err := cfg.Grade.Evaluator()
		if err != nil {
			return err
		}

		var reports []*grade.Report
		var rejected error
		if sheetFilePath != "" {
			var in io.Reader = cmd.InOrStdin()
			if sheetFilePath != "-" {
				f, err := os.Open(sheetFilePath)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			reports, rejected = evaluateSheets(ev, in, cmd.ErrOrStderr())
		} else {
			r, err := evaluateSubjects(ev, studentName, subjectArgs)
			if err != nil {
				return err
			}
			reports = []*grade.Report{r}
		}

		var out bytes.Buffer
		if err := renderReports(&out, reports, ev.Bounds(), gradeCSV, outputColumns(cmd.OutOrStdout())); err != nil {
			return err
		}
		if _, err := cmd.OutOrStdout().Write(out.Bytes()); err != nil {
			return err
		}

		if exportPath != "" {
			if len(reports) == 0 {
				return errNoReport
			}
			plain, err := exportReports(reports, ev.Bounds(), gradeCSV)
			if err != nil {
				return err
			}
			if err := writeExport(exportPath, plain); err != nil {
				return err
			}
			logger.Debug("reports exported", slog.String("path", exportPath), slog.Int("reports", len(reports)))
		}
		return rejected
	},
}

func init() {
	rootCmd.AddCommand(gradeCmd)

	gradeCmd.Flags().StringVarP(&studentName, "name", "n", "", "Student full name (first and last).")
	gradeCmd.Flags().StringArrayVarP(&subjectArgs, "subject", "s", nil, "Subject as name:internal:external; give five.")
	gradeCmd.Flags().StringVarP(&sheetFilePath, "file", "f", "", "Mark sheet file to evaluate (- for stdin).")
	gradeCmd.Flags().StringVarP(&exportPath, "export", "o", "", "Also write the reports to this file (.br compresses).")
	gradeCmd.Flags().BoolVar(&gradeCSV, "csv", false, "Write reports as CSV.")
	gradeCmd.Flags().StringVar(&fieldDelimiter, "field-delimiter", ",", "Field delimiter for CSV output.")
	gradeCmd.MarkFlagsMutuallyExclusive("file", "name")
	gradeCmd.MarkFlagsMutuallyExclusive("file", "subject")
}

// parseSubject splits "name:internal:external". The subject name may itself
// contain colons; the marks are taken from the right.
func parseSubject(arg string) grade.Input {
	rest, external, ok := cutLast(arg, ":")
	if !ok {
		return grade.Input{Subject: strings.TrimSpace(arg)}
	}
	subject, internal, ok := cutLast(rest, ":")
	if !ok {
		return grade.Input{Subject: strings.TrimSpace(rest), External: external}
	}
	return grade.Input{Subject: strings.TrimSpace(subject), Internal: internal, External: external}
}

func cutLast(s, sep string) (before, after string, found bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}

func evaluateSubjects(ev *grade.Evaluator, name string, args []string) (*grade.Report, error) {
	if len(args) > grade.Subjects {
		return nil, fmt.Errorf("got %d subjects, want %d", len(args), grade.Subjects)
	}
	var in [grade.Subjects]grade.Input
	for i, arg := range args {
		in[i] = parseSubject(arg)
	}
	return ev.Evaluate(name, in)
}

// evaluateSheets evaluates every sheet in r. Rejected sheets are reported to
// errOut and counted in the returned error; accepted ones are returned.
func evaluateSheets(ev *grade.Evaluator, r io.Reader, errOut io.Writer) ([]*grade.Report, error) {
	sheets, err := marksheet.Parse(r)
	if err != nil {
		return nil, err
	}

	var reports []*grade.Report
	rejected := 0
	for _, sheet := range sheets {
		report, err := evaluateSheet(ev, sheet)
		if err != nil {
			rejected++
			logger.Debug("sheet rejected", slog.Int("line", sheet.Line), slog.Any("error", err))
			fastcolor.FgRed.WriteString(stringWriter(errOut), fmt.Sprintf("line %d (%s): %v\n", sheet.Line, sheet.Name, err))
			continue
		}
		reports = append(reports, report)
	}
	if rejected > 0 {
		return reports, fmt.Errorf("%d of %d sheets rejected", rejected, len(sheets))
	}
	return reports, nil
}

func evaluateSheet(ev *grade.Evaluator, sheet *marksheet.Sheet) (*grade.Report, error) {
	in, err := sheet.Inputs()
	if err != nil {
		return nil, err
	}
	return ev.Evaluate(sheet.Name, in)
}

func renderReports(w *bytes.Buffer, reports []*grade.Report, bounds grade.Bounds, asCSV bool, columns int) error {
	if asCSV {
		return WriteReportsCSV(w, reports)
	}
	for i, r := range reports {
		if i > 0 {
			w.WriteString(separator(columns) + newLine)
		}
		WriteReport(w, r, bounds.Internal+bounds.External)
	}
	return nil
}

// exportReports renders reports without color escapes.
func exportReports(reports []*grade.Report, bounds grade.Bounds, asCSV bool) ([]byte, error) {
	enabled := fastcolor.Enabled
	fastcolor.Enabled = false
	defer func() { fastcolor.Enabled = enabled }()

	var buf bytes.Buffer
	if err := renderReports(&buf, reports, bounds, asCSV, columnWidth); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type stringWriterAdapter struct{ io.Writer }

func (a stringWriterAdapter) WriteString(s string) (int, error) {
	return io.WriteString(a.Writer, s)
}

func stringWriter(w io.Writer) io.StringWriter {
	if sw, ok := w.(io.StringWriter); ok {
		return sw
	}
	return stringWriterAdapter{w}
}
