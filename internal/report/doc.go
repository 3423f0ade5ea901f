// Package report serializes dashboard summaries for external consumers.
//
// BuildText produces the flat tabular text report: labeled sections, a
// header row per section, comma-joined fields, fixed truncation limits and
// decimal precision. BuildWorkbook produces the same summary as an Excel
// workbook with one sheet per section. Writer persists either artifact to
// the configured reports directory.
package report
