// Package textutil provides the text transforms used when composing
// notification embeds.
//
// The transforms are pure and layout-driven:
//   - Normalize folds HTML entities, break markup, and Unicode whitespace
//   - Truncate enforces the plot character budget
//   - Wrap performs greedy word wrap under line-length and line-count caps,
//     hard-splitting overlong words with a trailing hyphen
//   - BreakSubtitle picks a two-line break point for "Aus: <Serie>" subtitles
//     inside a fixed character window
//   - title helpers classify generic or unusable episode titles
//
// All length arithmetic operates on runes, not bytes; plots and titles are
// regularly non-ASCII.
package textutil
