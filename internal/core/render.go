package core

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"ubuntu-package-status/internal/types"
)

// ParseOutputFormat canonicalizes a user-supplied output format name.
// An empty value selects the txt format.
func ParseOutputFormat(value string) (types.OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "txt", "text":
		return types.OutputFormatTXT, nil
	case "json":
		return types.OutputFormatJSON, nil
	case "csv":
		return types.OutputFormatCSV, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported output format: %s", value))
	}
}

// Render serializes a status report in the requested format.  The
// result is the complete document, trailing newline included, ready to
// print on stdout.
func Render(report types.StatusReport, format types.OutputFormat) (string, error) {
	switch format {
	case types.OutputFormatTXT:
		return renderTXT(report), nil
	case types.OutputFormatJSON:
		return renderJSON(report)
	case types.OutputFormatCSV:
		return renderCSV(report)
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported output format: %s", format))
	}
}

func renderTXT(report types.StatusReport) string {
	var buf bytes.Buffer
	writer := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "PACKAGE\tSERIES\tPOCKET\tVERSION\tCOMPONENT\tPUBLISHED\tFOUND\tNOTE")
	for _, record := range report {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\t%t\t%s\n",
			record.Package,
			record.Series,
			record.Pocket,
			orDash(record.Version),
			orDash(record.Component),
			orDash(record.DatePublished),
			record.Found,
			orDash(record.Error),
		)
	}
	writer.Flush()
	return buf.String()
}

func renderJSON(report types.StatusReport) (string, error) {
	records := report
	if records == nil {
		records = types.StatusReport{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal status report").
			WithCause(err)
	}
	return string(data) + "\n", nil
}

func renderCSV(report types.StatusReport) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	header := []string{"package", "series", "pocket", "version", "component", "found"}
	if err := writer.Write(header); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write csv header").
			WithCause(err)
	}
	for _, record := range report {
		row := []string{
			record.Package,
			record.Series,
			record.Pocket,
			record.Version,
			record.Component,
			strconv.FormatBool(record.Found),
		}
		if err := writer.Write(row); err != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write csv row").
				WithCause(err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to flush csv output").
			WithCause(err)
	}
	return buf.String(), nil
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
