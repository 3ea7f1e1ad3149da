// Package ui is the Fyne desktop front end: a single window to enter a URL,
// pick a quality tier, follow the running session and save the archive.
// Widgets are only touched on the Fyne thread; the session worker publishes
// snapshots that a ticker drains.
package ui
