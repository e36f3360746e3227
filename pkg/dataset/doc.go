// Package dataset provides the ordered series data a column chart is drawn
// from, plus readers for the file formats the CLI and HTTP API accept.
//
// # Model
//
// A [Dataset] is an ordered list of named [Series]; each series is an
// ordered list of category/value [Entry] records. Order is significant
// everywhere: the first series drives the chart and the left axis, its
// categories label the baseline, and every series name appears in the
// legend. A value may be absent (nil), in which case its column slot is
// kept empty.
//
// # Formats
//
// JSON is an object of objects. Key order is preserved and null marks an
// absent value:
//
//	{
//	  "Revenue": {"Q1": 120, "Q2": 98.5, "Q3": null},
//	  "Costs":   {"Q1": 80,  "Q2": 75}
//	}
//
// TOML uses one table per series, in document order:
//
//	[Revenue]
//	Q1 = 120
//	Q2 = 98.5
//
// CSV and XLSX share a tabular layout: a header row naming the series, one
// row per category, empty cells for absent values:
//
//	category,Revenue,Costs
//	Q1,120,80
//	Q2,98.5,75
//	Q3,,
//
// [Load] picks the reader from the file extension.
package dataset
