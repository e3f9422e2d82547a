// SPDX-License-Identifier: MIT

package migration

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/katalvlaran/epiroute/rates"
)

// Metadata keys. Lookups are case-sensitive.
const (
	keyMetadata          = "Metadata"
	keyIDReference       = "IdReference"
	keyNodeCount         = "NodeCount"
	keyDatavalueCount    = "DatavalueCount"
	keyMigrationType     = "MigrationType"
	keyGenderDataType    = "GenderDataType"
	keyAgesYears         = "AgesYears"
	keyInterpolationType = "InterpolationType"
	keyNodeOffsets       = "NodeOffsets"
)

// parseMetadata reads the sidecar, fills the layout fields of f and
// returns the expected binary size in bytes.
func (f *File) parseMetadata(path, idReference string) (int64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("migration: %s: %w", path, ErrFileNotFound)
		}
		return 0, fmt.Errorf("migration: read %s: %w", path, err)
	}
	if !gjson.ValidBytes(raw) {
		return 0, fmt.Errorf("migration: %s: not valid JSON: %w", path, ErrMetadata)
	}
	doc := gjson.ParseBytes(raw)
	md := doc.Get(keyMetadata)
	if !md.IsObject() {
		return 0, fmt.Errorf("migration: %s[%s]: required object is missing: %w", path, keyMetadata, ErrMetadata)
	}

	// IdReference
	ref := md.Get(keyIDReference)
	if ref.Type != gjson.String {
		return 0, metaErrorf(path, keyIDReference, ErrMetadata, "required string is missing")
	}
	if !strings.EqualFold(ref.String(), idReference) {
		return 0, metaErrorf(path, keyIDReference, ErrIDReference,
			"'%s' does not match idreference '%s'", ref.String(), idReference)
	}

	// DatavalueCount
	f.destPerNode = f.spec.Type.DefaultDestinations()
	if v := md.Get(keyDatavalueCount); v.Exists() {
		if v.Type != gjson.Number {
			return 0, metaErrorf(path, keyDatavalueCount, ErrMetadata, "must be a number")
		}
		n := v.Int()
		if n <= 0 || n > MaxDestinations {
			return 0, metaErrorf(path, keyDatavalueCount, ErrDatavalueCount,
				"%d not in [1, %d]", n, MaxDestinations)
		}
		f.destPerNode = int(n)
	}

	// MigrationType
	if v := md.Get(keyMigrationType); v.Exists() {
		t, err := ParseType(v.String())
		if err != nil {
			return 0, metaErrorf(path, keyMigrationType, err, "")
		}
		if t != f.spec.Type {
			return 0, metaErrorf(path, keyMigrationType, ErrMigrationTypeMismatch,
				"'%s' but the file is configured as '%s'", t, f.spec.Type)
		}
	}

	// GenderDataType
	f.genderType = SameForBothGenders
	if v := md.Get(keyGenderDataType); v.Exists() {
		if f.genderType, err = ParseGenderDataType(v.String()); err != nil {
			return 0, metaErrorf(path, keyGenderDataType, err, "")
		}
	}

	// AgesYears
	if f.ages, err = parseAges(md.Get(keyAgesYears)); err != nil {
		return 0, metaErrorf(path, keyAgesYears, err, "")
	}

	// InterpolationType
	f.interp = rates.Linear
	if v := md.Get(keyInterpolationType); v.Exists() {
		if f.interp, err = rates.ParseInterpolation(v.String()); err != nil {
			return 0, metaErrorf(path, keyInterpolationType, ErrUnknownEnum,
				"%v, valid values are: %s", err, quoteAll(rates.InterpolationNames()))
		}
	}

	// NodeCount + NodeOffsets
	count := md.Get(keyNodeCount)
	if count.Type != gjson.Number {
		return 0, metaErrorf(path, keyNodeCount, ErrMetadata, "required number is missing")
	}
	offs := doc.Get(keyNodeOffsets)
	if offs.Type != gjson.String {
		return 0, fmt.Errorf("migration: %s[%s]: required string is missing: %w", path, keyNodeOffsets, ErrMetadata)
	}
	if f.offsets, err = parseOffsets(offs.String(), int(count.Int())); err != nil {
		return 0, fmt.Errorf("migration: %s[%s]: %w", path, keyNodeOffsets, err)
	}

	// Expected size; offsets must fall inside it.
	f.ageSize = int64(len(f.offsets)) * int64(f.destPerNode) * recordSize
	f.genderSize = int64(len(f.ages)) * f.ageSize
	expected := int64(f.genderType.chunks()) * f.genderSize
	for id, off := range f.offsets {
		if int64(off) >= expected {
			return 0, fmt.Errorf("migration: invalid '%s' in %s: node id=%d has an offset of 0x%x but the file size is expected to be %d (0x%x): %w",
				keyNodeOffsets, path, id, off, expected, expected, ErrOffsetRange)
		}
	}
	return expected, nil
}

// parseAges validates AgesYears. A missing key yields [MaxHumanAge].
func parseAges(v gjson.Result) ([]float64, error) {
	if !v.Exists() {
		return []float64{MaxHumanAge}, nil
	}
	const rule = "must be an array of ages in years between 0 and 125 in strictly increasing order"
	if !v.IsArray() {
		return nil, fmt.Errorf("%s: %w", rule, ErrAgesYears)
	}
	items := v.Array()
	if len(items) == 0 {
		return nil, fmt.Errorf("empty array, %s: %w", rule, ErrAgesYears)
	}
	ages := make([]float64, 0, len(items))
	for i, it := range items {
		age := it.Float()
		if it.Type != gjson.Number || age < 0 || age > MaxHumanAge || (i > 0 && age <= ages[i-1]) {
			return nil, fmt.Errorf("[%d] = %s, %s: %w", i, it.Raw, rule, ErrAgesYears)
		}
		ages = append(ages, age)
	}
	return ages, nil
}

// parseOffsets decodes 16 hex characters per node: 8 for the external id,
// 8 for the byte offset.
func parseOffsets(s string, count int) (map[uint32]uint32, error) {
	if len(s)%offsetWidth != 0 || len(s)/offsetWidth != count {
		return nil, fmt.Errorf("length/16 = %d (remainder %d) but NodeCount = %d: %w",
			len(s)/offsetWidth, len(s)%offsetWidth, count, ErrNodeOffsets)
	}
	out := make(map[uint32]uint32, count)
	for n := 0; n < count; n++ {
		entry := s[n*offsetWidth : (n+1)*offsetWidth]
		id, err := strconv.ParseUint(entry[:8], 16, 32)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %q: %w", n, entry, ErrNodeOffsets)
		}
		off, err := strconv.ParseUint(entry[8:], 16, 32)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %q: %w", n, entry, ErrNodeOffsets)
		}
		out[uint32(id)] = uint32(off)
	}
	return out, nil
}

// metaErrorf labels err with path[Metadata][key].
func metaErrorf(path, key string, err error, format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	if detail == "" {
		return fmt.Errorf("migration: %s[%s][%s]: %w", path, keyMetadata, key, err)
	}
	return fmt.Errorf("migration: %s[%s][%s]: %s: %w", path, keyMetadata, key, detail, err)
}
