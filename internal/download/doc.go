// Package download runs one download-and-archive session at a time on top of
// yt-dlp (via github.com/lrstanley/go-ytdlp). Format queries are tried in order
// until one succeeds, engine progress is folded into a model.DownloadSession,
// and the staged files are bundled into a zip archive chosen by the caller.
package download
