package aeff

import "go.trai.ch/zerr"

var (
	// ErrBadBinning indicates a bin-edge sequence with fewer than two
	// edges or edges that are not strictly increasing.
	ErrBadBinning = zerr.New("invalid bin edges")

	// ErrBadConfig indicates an analysis configuration that cannot be run.
	ErrBadConfig = zerr.New("invalid analysis configuration")

	// ErrCacheMiss indicates that no cached array exists for the key.
	ErrCacheMiss = zerr.New("no cached array for key")

	// ErrShapeMismatch indicates that a cached array's shape disagrees
	// with the requested bin configuration.  The stale file is left in
	// place for manual inspection.
	ErrShapeMismatch = zerr.New("cached array shape does not match binning")

	// ErrNoFiles indicates an empty input file list.
	ErrNoFiles = zerr.New("no input files")
)
