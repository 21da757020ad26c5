// Package viz renders machine runs as text: step-by-step traces with a head
// marker under the tape, and ASCII plots of stored traces.
package viz
