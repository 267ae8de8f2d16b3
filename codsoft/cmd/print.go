package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nehashinde/codsoft/atm"
	"github.com/nehashinde/codsoft/codsoft/internal/fastcolor"
	"github.com/nehashinde/codsoft/currency"
	"github.com/nehashinde/codsoft/grade"
)

const (
	entryTimeFormat = "2006/01/02 15:04"
	newLine         = "\n"
)

var fieldDelimiter string

// gradeColors paints each default grade letter.
var gradeColors = map[string]string{
	"A": "#4caf50",
	"B": "#2196f3",
	"C": "#ff8c00",
	"D": "#f44336",
}

func gradeColor(g string) fastcolor.Color {
	if hex, ok := gradeColors[g]; ok {
		return fastcolor.Hex(hex)
	}
	return fastcolor.Bold
}

// WriteHistory writes ledger entries formatted to fit in columns, oldest
// first, with the running balance right-justified.
func WriteHistory(w io.StringWriter, entries []atm.Entry, symbol string, columns int) {
	// "- " + time + " " + text + " " + balance(14)
	if columns < 50 {
		columns = 50
	}
	textWidth := columns - 2 - len(entryTimeFormat) - 1 - 1 - 14

	if len(entries) == 0 {
		w.WriteString("No transactions yet." + newLine)
		return
	}
	for _, e := range entries {
		textColor := fastcolor.Reset
		switch e.Kind {
		case atm.Deposit:
			textColor = fastcolor.FgGreen
		case atm.Withdrawal:
			textColor = fastcolor.FgRed
		case atm.BalanceCheck:
			textColor = fastcolor.FgCyan
		}

		w.WriteString("- ")
		w.WriteString(e.Time.Format(entryTimeFormat))
		w.WriteString(" ")
		textColor.WriteStringFixed(w, e.Text, textWidth, false)
		w.WriteString(" ")
		fastcolor.FgBlue.WriteStringFixed(w, symbol+e.Balance.StringFixed(2), 14, true)
		w.WriteString(newLine)
	}
}

// WriteDetails writes the masked account summary.
func WriteDetails(w io.StringWriter, d atm.Details) {
	fastcolor.Bold.WriteString(w, "Account Details")
	w.WriteString(newLine)
	w.WriteString(d.String())
	w.WriteString(newLine)
}

// WriteRates writes the conversion matrix of t, one row per source currency.
func WriteRates(w io.StringWriter, t *currency.Table) {
	const cell = 12
	codes := t.Codes()

	fastcolor.Bold.WriteStringFixed(w, "from\\to", 8, false)
	for _, to := range codes {
		fastcolor.Bold.WriteStringFixed(w, string(to), cell, true)
	}
	w.WriteString(newLine)

	for _, from := range codes {
		fastcolor.FgBlue.WriteStringFixed(w, string(from), 8, false)
		for _, to := range codes {
			r, _ := t.Rate(currency.Pair{From: from, To: to})
			color := fastcolor.Reset
			if from == to {
				color = fastcolor.FgYell
			}
			color.WriteStringFixed(w, r.StringFixed(4), cell, true)
		}
		w.WriteString(newLine)
	}
}

// WriteReport writes one student report. perSubject is the highest total a
// single subject can reach.
func WriteReport(w io.StringWriter, r *grade.Report, perSubject int) {
	width := len("Student Name")
	for _, s := range r.Subjects {
		if n := utf8.RuneCountInString(s.Subject); n > width {
			width = n
		}
	}
	label := func(s string) {
		fastcolor.Bold.WriteStringFixed(w, s, width, false)
		w.WriteString(" : ")
	}

	label("Student Name")
	w.WriteString(r.Name)
	w.WriteString(newLine + newLine)

	outOf := "/" + strconv.Itoa(perSubject)
	for _, s := range r.Subjects {
		label(s.Subject)
		w.WriteString(strconv.Itoa(s.Total) + outOf)
		w.WriteString(newLine)
	}
	w.WriteString(newLine)

	label("Total Marks")
	w.WriteString(strconv.Itoa(r.Total))
	w.WriteString(newLine)
	label("Average")
	w.WriteString(r.AverageString())
	w.WriteString(newLine)
	label("Grade")
	gradeColor(r.Grade).WriteString(w, r.Grade)
	w.WriteString(newLine)
	label("Remark")
	w.WriteString(r.Remark)
	w.WriteString(newLine)
}

// WriteReportsCSV writes a header row then one record per report.
func WriteReportsCSV(w io.Writer, reports []*grade.Report) error {
	csvWriter := csv.NewWriter(w)
	if fieldDelimiter != "" {
		csvWriter.Comma, _ = utf8.DecodeRuneInString(fieldDelimiter)
	}

	header := []string{"name"}
	for i := 1; i <= grade.Subjects; i++ {
		n := strconv.Itoa(i)
		header = append(header, "subject_"+n, "internal_"+n, "external_"+n, "total_"+n)
	}
	header = append(header, "total", "average", "grade", "remark")
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("error writing header to CSV: %w", err)
	}

	for _, r := range reports {
		record := []string{r.Name}
		for _, s := range r.Subjects {
			record = append(record,
				s.Subject,
				strconv.Itoa(s.Internal),
				strconv.Itoa(s.External),
				strconv.Itoa(s.Total),
			)
		}
		record = append(record, strconv.Itoa(r.Total), r.AverageString(), r.Grade, r.Remark)
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("error writing record to CSV: %w", err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("error flushing CSV buffer: %w", err)
	}
	return nil
}

// separator is a horizontal rule columns wide.
func separator(columns int) string {
	return strings.Repeat("-", columns)
}
