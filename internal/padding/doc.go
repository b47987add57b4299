// Package padding pads field text to a fixed width on write and strips the
// padding again on read.
package padding
