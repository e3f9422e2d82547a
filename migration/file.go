// SPDX-License-Identifier: MIT

package migration

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/katalvlaran/epiroute/nodes"
	"github.com/katalvlaran/epiroute/rates"
)

// Resolver maps an external node id to its SUID. (*nodes.Registry).SUIDOf
// satisfies it.
type Resolver func(externalID uint32) (nodes.SUID, bool)

// FileSpec configures one migration file slot.
type FileSpec struct {
	Type       Type
	Enabled    bool
	Filename   string
	Multiplier float64
}

// readerAtCloser is the open binary.
type readerAtCloser interface {
	io.ReaderAt
	io.Closer
}

// File reads the rates of one migration type.
type File struct {
	spec        FileSpec
	searchPaths []string
	logger      *slog.Logger

	path        string
	destPerNode int
	genderType  GenderDataType
	interp      rates.InterpolationType
	ages        []float64
	ageSize     int64
	genderSize  int64
	offsets     map[uint32]uint32
	r           readerAtCloser
}

// NewFile returns an uninitialized file slot. Nothing is read until
// Initialize.
func NewFile(spec FileSpec, opts ...Option) *File {
	o := buildOptions(opts)
	return &File{
		spec:        spec,
		searchPaths: o.searchPaths,
		logger:      o.logger,
		destPerNode: spec.Type.DefaultDestinations(),
		ages:        []float64{MaxHumanAge},
	}
}

// Type returns the migration type served by the file.
func (f *File) Type() Type { return f.spec.Type }

// Enabled reports whether the slot is switched on.
func (f *File) Enabled() bool { return f.spec.Enabled }

// Configured reports whether the slot is on and names a file.
func (f *File) Configured() bool { return f.spec.Enabled && f.spec.Filename != "" }

// Path returns the resolved binary path after Initialize.
func (f *File) Path() string { return f.path }

// DestinationsPerNode returns DatavalueCount.
func (f *File) DestinationsPerNode() int { return f.destPerNode }

// GenderDataType returns the gender layout.
func (f *File) GenderDataType() GenderDataType { return f.genderType }

// Interpolation returns the age interpolation type.
func (f *File) Interpolation() rates.InterpolationType { return f.interp }

// AgesYears returns a copy of the age buckets.
func (f *File) AgesYears() []float64 { return append([]float64(nil), f.ages...) }

// NodeCount returns the number of source nodes with data.
func (f *File) NodeCount() int { return len(f.offsets) }

// NodeIDs returns the external ids of the nodes with data, ascending.
func (f *File) NodeIDs() []uint32 {
	ids := make([]uint32, 0, len(f.offsets))
	for id := range f.offsets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Initialize resolves the file on the search path, parses <file>.json,
// and opens the binary after checking its size. Disabled slots do nothing.
// Calling it again closes the binary opened before.
func (f *File) Initialize(idReference string) error {
	if !f.spec.Enabled {
		return nil
	}
	if f.spec.Filename == "" {
		return fmt.Errorf("%s: %w", f.spec.Type, ErrEmptyFilename)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("migration: reinitialize %s: %w", f.path, err)
	}
	path, err := findOnPath(f.spec.Filename, f.searchPaths)
	if err != nil {
		return err
	}
	expected, err := f.parseMetadata(path+".json", idReference)
	if err != nil {
		return err
	}

	fh, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("migration: open %s: %w", path, err)
	}
	st, err := fh.Stat()
	if err != nil {
		_ = fh.Close()
		return fmt.Errorf("migration: stat %s: %w", path, err)
	}
	if st.Size() != expected {
		_ = fh.Close()
		return fmt.Errorf("migration: %s: expected %d bytes, read %d bytes: %w", path, expected, st.Size(), ErrFileSize)
	}
	f.path, f.r = path, fh

	f.logger.Debug("migration file opened",
		slog.String("type", f.spec.Type.String()),
		slog.String("path", path),
		slog.Int("nodes", len(f.offsets)),
		slog.Int("destinations", f.destPerNode),
		slog.Int("ages", len(f.ages)),
		slog.String("gender_data", f.genderType.String()),
		slog.String("interpolation", f.interp.String()))

	return nil
}

// ReadData appends the rates from node from to data, one slice per gender.
// A file with a single gender chunk fills both. Repeated age blocks of the
// node must list the same destinations in the same slots.
//
// fixed is true when the file holds one gender chunk and the single age
// bucket MaxHumanAge. Disabled files and nodes without data leave data
// untouched and report fixed.
func (f *File) ReadData(from uint32, resolve Resolver, data *[2][]RateData) (fixed bool, err error) {
	off, ok := f.offsets[from]
	if !f.spec.Enabled || f.r == nil || !ok {
		return true, nil
	}

	chunks := f.genderType.chunks()
	fixed = chunks == 1 && len(f.ages) == 1 && f.ages[0] == MaxHumanAge

	ids := make([]uint32, f.destPerNode)
	rts := make([]float64, f.destPerNode)
	blockSize := int64(f.destPerNode * recordSize)

	for g := range data {
		chunk := g
		if chunks == 1 {
			chunk = 0
		}
		initial := len(data[g])
		for a, age := range f.ages {
			pos := int64(chunk)*f.genderSize + int64(a)*f.ageSize + int64(off)
			sec := io.NewSectionReader(f.r, pos, blockSize)
			if err = binary.Read(sec, binary.LittleEndian, ids); err == nil {
				err = binary.Read(sec, binary.LittleEndian, rts)
			}
			if err != nil {
				return false, fmt.Errorf("migration: %s: node %d: %w (%v)", f.spec.Filename, from, ErrShortRead, err)
			}

			slot := initial
			for i, id := range ids {
				if id == 0 {
					continue
				}
				to, known := resolve(id)
				if !known {
					return false, fmt.Errorf("migration: %s: node %d lists destination %d: %w", f.spec.Filename, from, id, ErrUnknownNode)
				}
				if slot >= len(data[g]) {
					data[g] = append(data[g], NewRateData(to, f.spec.Type, f.interp))
				} else if d := &data[g][slot]; d.Destination() != to || d.Type() != f.spec.Type {
					return false, fmt.Errorf("migration: in file '%s', the 'To' node ids are not the same for the age data sections of node %d: %w",
						f.spec.Filename, from, ErrInconsistentDestinations)
				}
				if err = data[g][slot].AddRate(age, rts[i]*f.spec.Multiplier); err != nil {
					return false, fmt.Errorf("migration: %s: node %d: %w", f.spec.Filename, from, err)
				}
				slot++
			}
		}
	}
	return fixed, nil
}

// Close releases the binary. It is safe to call more than once.
func (f *File) Close() error {
	if f.r == nil {
		return nil
	}
	err := f.r.Close()
	f.r = nil
	return err
}

// findOnPath returns the first existing dir/name. Absolute names are used
// as given.
func findOnPath(name string, dirs []string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("migration: %s: %w", name, ErrFileNotFound)
		}
		return name, nil
	}
	for _, dir := range dirs {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("migration: stat %s: %w", p, err)
		}
	}
	return "", fmt.Errorf("migration: %s not found in %v: %w", name, dirs, ErrFileNotFound)
}
