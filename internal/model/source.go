// Package model defines the data structures shared by the translator host.
package model

// Path represents a file system path.
type Path string

// File is a source file and the hash of its content.
type File struct {
	Path Path   `yaml:"path"`
	Hash string `yaml:"hash"`
}

// Source pairs a C# file with the Kotlin file it translates to. Relative is
// the path below the project root that both share.
type Source struct {
	Origin   *File `yaml:"origin"`
	Relative Path  `yaml:"relative"`
	Output   Path  `yaml:"output"`
}
