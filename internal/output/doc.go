// Package output provides the output destinations for extracted manifests:
// pluggable writers via the [Writer] interface, with [StdoutWriter] and
// [FileWriter] implementations. FileWriter creates parent directories,
// warns when overwriting, and supports custom permissions.
package output
