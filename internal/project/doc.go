// Package project maintains the catalog of files under a project
// root.
//
// The Catalog scans the tree once on Open, answers suffix-filtered
// file listings, and hands out documents that share one
// configuration, one file system and one header/source pair cache.
// An optional fsnotify watcher keeps the file list current while a
// session runs.
//
// File access goes through the vfs subpackage, so catalog and
// document logic can be tested against an in-memory file system.
package project
