// Package sheet evaluates documents of calculator lines.
//
// A [Document] holds an ordered list of lines. After every edit it runs a
// pass from the first line to the last: each line is parsed and evaluated
// against the variables assigned by the lines above it, and its outcome is
// recorded as a [Line] with a [State]. Errors stay on the line that caused
// them.
//
//	doc := sheet.New()
//	for _, r := range doc.SetText("1500 * 0.2 == tax\n1500 - tax") {
//		fmt.Println(r.Source, "=", r.Text)
//	}
//
// Passes are incremental. A line whose text and whose variables' values are
// unchanged since an earlier pass reuses that pass's result, wherever the
// line now sits. Reuse is exact: the records of an incremental pass are
// always those of a full pass.
package sheet
