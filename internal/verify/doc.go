// Package verify runs rule scenarios end to end: parse, dispatch, compare the
// diagnostic list exactly, apply every fix in one batch and compare the
// rendered text byte for byte. Scenarios are written inline or as txtar
// archives under testdata.
package verify
