// Package motion plays the clips used by word-to-motion.
//
// Repository tracks the .vrma clips of a motions folder and keeps at most two
// of them playing, so the newest clip can blend over the previous one.
// Player plays the built-in clips and returns to the default clip when one
// ends. Mapper turns keyboard words, number keys, gamepad buttons or MIDI
// notes into clip names, depending on which device is assigned to
// word-to-motion.
package motion
