// Package typing renders the "someone is typing" indicator: three bouncing
// dots with staggered offsets followed by a label.
package typing
