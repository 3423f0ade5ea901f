package analytics

import (
	"encoding/csv"
	"strings"
)

// Row is one parsed data row, keyed by column name from the section header.
// Values are raw strings; consumers apply their own typed conversions.
type Row map[string]string

// sectionBoundary marks the metadata comment that opens the next section in
// multi-section Firebase exports.
const sectionBoundary = "Start date:"

// ParseSection extracts one comment-delimited section from a Firebase
// Analytics CSV export and parses it into column-keyed rows.
//
// The header line is the first non-comment line containing marker as a
// substring, or the first non-comment line containing a comma when marker is
// empty. Data rows run until end of input or a comment line announcing the
// next section's date range. Returns an empty slice when no header is found;
// it never fails — a row that defeats the CSV reader degrades to a naive
// comma split.
func ParseSection(content []byte, marker string) []Row {
	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")

	headerIdx := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if marker != "" {
			if strings.Contains(trimmed, marker) {
				headerIdx = i
				break
			}
		} else if strings.Contains(trimmed, ",") {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return []Row{}
	}

	headerLine := strings.TrimSpace(lines[headerIdx])

	var dataLines []string
	for _, line := range lines[headerIdx+1:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			if strings.Contains(trimmed, sectionBoundary) {
				break
			}
			continue
		}
		dataLines = append(dataLines, trimmed)
	}

	header, records, err := parseCSVBlock(headerLine, dataLines)
	if err != nil {
		header, records = splitManually(headerLine, dataLines)
	}

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows
}

// parseCSVBlock parses the header and data lines with the csv reader,
// tolerating per-row arity differences and irregular quoting.
func parseCSVBlock(headerLine string, dataLines []string) ([]string, [][]string, error) {
	block := headerLine
	if len(dataLines) > 0 {
		block += "\n" + strings.Join(dataLines, "\n")
	}

	reader := csv.NewReader(strings.NewReader(block))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, nil
	}

	return all[0], all[1:], nil
}

// splitManually is the degraded path: plain comma splits zipped positionally
// against the header. Rows that are malformed beyond recognition yield
// partially empty fields rather than aborting the file.
func splitManually(headerLine string, dataLines []string) ([]string, [][]string) {
	header := strings.Split(headerLine, ",")
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records := make([][]string, 0, len(dataLines))
	for _, line := range dataLines {
		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		records = append(records, fields)
	}

	return header, records
}

// field looks up a row value by exact column name, falling back to the first
// column whose name contains it. Firebase localizes and occasionally renames
// headers, so consumers match on the stable fragment.
func field(row Row, name string) string {
	if v, ok := row[name]; ok {
		return v
	}
	for col, v := range row {
		if strings.Contains(col, name) {
			return v
		}
	}
	return ""
}
