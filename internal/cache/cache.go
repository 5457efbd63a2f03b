// Package cache persists completed synthesis results on disk, keyed
// by a content hash of the request that produced them, so repeated
// synthesis of the same sketch against the same example never pays
// for re-enumeration (spec §4.7's candidate space is combinatorial;
// this is the supplementary production concern the distilled spec
// never needed to mention, grounded on the teacher's own canonical
// CBOR + digest pattern for its execution-plan cache keys).
package cache

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/sha3"

	"github.com/aledsdavies/whilesynth/internal/driver"
)

// Key is the canonical, order-independent shape of a synthesis
// request. Equal requests (up to map key ordering, which Go maps
// don't guarantee) must canonicalize to the same bytes, which is why
// the sorted-pairs slices exist instead of encoding the maps directly.
type Key struct {
	Source    string
	Inputs    []pair
	Outputs   []pair
	WithExprs bool
}

type pair struct {
	Name  string
	Value int
}

// NewKey builds a Key from a synthesis request's arguments.
func NewKey(source string, inputs, outputs map[string]int, withExprs bool) Key {
	return Key{
		Source:    source,
		Inputs:    sortedPairs(inputs),
		Outputs:   sortedPairs(outputs),
		WithExprs: withExprs,
	}
}

func sortedPairs(m map[string]int) []pair {
	out := make([]pair, 0, len(m))
	for k, v := range m {
		out = append(out, pair{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Digest returns the sha3-256 hex digest of k's canonical CBOR
// encoding, used as the on-disk filename.
func (k Key) Digest() (string, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return "", fmt.Errorf("cache: building canonical CBOR mode: %w", err)
	}
	data, err := encMode.Marshal(k)
	if err != nil {
		return "", fmt.Errorf("cache: encoding key: %w", err)
	}
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// entry is what's actually stored on disk: the driver.Result, CBOR
// encoded (driver.Outcome included so a cached NoSolution/Timeout
// verdict is replayed without a fresh solver round-trip too).
type entry struct {
	Outcome int
	Source  string
}

// Store is a directory of digest-named CBOR files under dir (callers
// typically pass DefaultDir()).
type Store struct{ dir string }

// DefaultDir returns $XDG_CACHE_HOME/whilesynth, falling back to
// $HOME/.cache/whilesynth when XDG_CACHE_HOME is unset.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "whilesynth"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "whilesynth"), nil
}

// Open returns a Store rooted at dir, creating it if absent.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: creating %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

var errCacheMiss = errors.New("cache: miss")

// ErrMiss is returned by Get when k has no cached entry.
var ErrMiss = errCacheMiss

func (s *Store) path(digest string) string {
	return filepath.Join(s.dir, digest+".cbor")
}

// Get returns the cached Result for k, or ErrMiss if absent.
func (s *Store) Get(k Key) (driver.Result, error) {
	digest, err := k.Digest()
	if err != nil {
		return driver.Result{}, err
	}
	data, err := os.ReadFile(s.path(digest))
	if errors.Is(err, os.ErrNotExist) {
		return driver.Result{}, ErrMiss
	}
	if err != nil {
		return driver.Result{}, err
	}
	var e entry
	if err := cbor.Unmarshal(data, &e); err != nil {
		return driver.Result{}, fmt.Errorf("cache: decoding entry: %w", err)
	}
	return driver.Result{Outcome: driver.Outcome(e.Outcome), Source: e.Source}, nil
}

// Put stores res under k, overwriting any prior entry.
func (s *Store) Put(k Key, res driver.Result) error {
	digest, err := k.Digest()
	if err != nil {
		return err
	}
	data, err := cbor.Marshal(entry{Outcome: int(res.Outcome), Source: res.Source})
	if err != nil {
		return fmt.Errorf("cache: encoding entry: %w", err)
	}
	return os.WriteFile(s.path(digest), data, 0o644)
}
