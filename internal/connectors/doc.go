// Package connectors holds the sources report files are read from.
// The filesystem connector lists, watches and opens files on local disk.
package connectors
