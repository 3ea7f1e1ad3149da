// Package platform contains OS integration and external tooling glue:
// filesystem helpers for the staging directory, playlist item discovery and
// revealing the finished archive in the system file manager.
package platform
