// Package announce implements the periodic server broadcast.
package announce
