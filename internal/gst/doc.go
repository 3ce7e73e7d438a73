// Package gst computes GST tax breakdowns and allocates invoice numbers.
//
// Everything here is a pure function over its inputs plus the lookups
// passed in by the caller: there is no package-level configuration. Line
// amounts are kept at full precision and only the invoice grand total is
// rounded, once, to a whole rupee.
package gst
