package aeff

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/sbinet/npyio"
	"go.trai.ch/zerr"
	"gonum.org/v1/gonum/mat"
)

// Key identifies a cached count matrix or effective-area matrix.  The key
// carries the bin configuration and, where they matter, the energy mode and
// the theta-square cut; it never carries file paths, only a digest of the
// input file list.
type Key struct {
	Kind   string // "aeff" or "mctally"
	NZd    int    // zenith-distance bins
	NE     int    // energy bins
	Mode   EnergyMode
	Cut    float64 // theta-square cut, ignored for "mctally"
	Digest uint64  // input file-list digest, 0 if not applicable
}

// AreaKey returns the cache key of an effective-area matrix.
func AreaKey(eEdges, zdEdges BinEdges, mode EnergyMode, cut float64, digest uint64) Key {
	return Key{Kind: "aeff", NZd: zdEdges.NBins(), NE: eEdges.NBins(), Mode: mode, Cut: cut, Digest: digest}
}

// TallyKey returns the cache key of a thrown-simulation count matrix.  The
// thrown events only carry a true energy and are tallied without cuts, so
// neither the energy mode nor the cut enters the key.
func TallyKey(eEdges, zdEdges BinEdges, digest uint64) Key {
	return Key{Kind: "mctally", NZd: zdEdges.NBins(), NE: eEdges.NBins(), Digest: digest}
}

// Name formats the key into its cache file name.
func (k Key) Name() string {
	name := fmt.Sprintf("%s_zd%d_e%d", k.Kind, k.NZd, k.NE)
	if k.Kind != "mctally" {
		name += fmt.Sprintf("_%s_theta%s", k.Mode, strconv.FormatFloat(k.Cut, 'g', -1, 64))
	}
	if k.Digest != 0 {
		name += fmt.Sprintf("_%016x", k.Digest)
	}
	return name + ".npy"
}

// ListDigest hashes an ordered file list into a cache-key digest.
func ListDigest(files []string) uint64 {
	h := xxhash.New()
	for _, f := range files {
		_, _ = h.WriteString(f)
		_, _ = h.Write([]byte{0}) // separator
	}
	return h.Sum64()
}

// Cache stores matrices as .npy files under a directory.  Entries are never
// mutated in place: recomputation replaces the file through a rename.
type Cache struct {
	Dir string
}

// Load reads the matrix cached under k and validates its shape against the
// key's bin configuration.  A missing entry returns ErrCacheMiss.  A shape
// mismatch returns ErrShapeMismatch and leaves the stale file in place;
// deleting it is a manual decision.
func (c *Cache) Load(k Key) (*mat.Dense, error) {
	path := filepath.Join(c.Dir, k.Name())
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		// Wrap before attaching metadata: With on a bare sentinel drops
		// the cause chain and errors.Is stops matching.
		return nil, zerr.With(zerr.Wrap(ErrCacheMiss, "cache lookup"), "key", k.Name())
	}
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open cached array")
	}
	defer f.Close()

	var m mat.Dense
	if err := npyio.Read(f, &m); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to decode cached array"), "path", path)
	}
	if r, cols := m.Dims(); r != k.NZd || cols != k.NE {
		err := zerr.With(zerr.Wrap(ErrShapeMismatch, "cache lookup"), "path", path)
		err = zerr.With(err, "got", fmt.Sprintf("(%d,%d)", r, cols))
		err = zerr.With(err, "want", fmt.Sprintf("(%d,%d)", k.NZd, k.NE))
		return nil, err
	}
	return &m, nil
}

// Store writes m under k, replacing any previous entry.  The write goes
// through a temp file and a rename, which is atomic enough for the
// single-writer use the cache is designed for.
func (c *Cache) Store(k Key, m *mat.Dense) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return zerr.Wrap(err, "failed to create cache directory")
	}
	tmp, err := os.CreateTemp(c.Dir, k.Name()+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create cache temp file")
	}
	defer os.Remove(tmp.Name())

	if err := npyio.Write(tmp, m); err != nil {
		tmp.Close()
		return zerr.Wrap(err, "failed to encode array")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to flush cache file")
	}
	if err := os.Rename(tmp.Name(), filepath.Join(c.Dir, k.Name())); err != nil {
		return zerr.Wrap(err, "failed to publish cache file")
	}
	return nil
}
