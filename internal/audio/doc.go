// Package audio provides the notification cue: one lazily created sound
// handle per owner, rewound and replayed on every trigger. Playback uses the
// beep library with MP3 assets fetched over HTTP.
package audio
