// Package connectors holds adapters that bring input files into the
// conversion pipeline. The filesystem package resolves input paths and
// watches a single file for changes so conversions can be re-run.
package connectors
