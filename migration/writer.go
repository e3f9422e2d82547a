// SPDX-License-Identifier: MIT

package migration

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/tidwall/sjson"

	"github.com/katalvlaran/epiroute/rates"
)

// Destination is one (to, rate) record of a written block.
type Destination struct {
	To   uint32
	Rate float64
}

// NodeRates holds the blocks of one source node, indexed
// [gender chunk][age bucket].
type NodeRates struct {
	From   uint32
	Blocks [][][]Destination
}

// FixedNodeRates is NodeRates with a single gender chunk and age bucket.
func FixedNodeRates(from uint32, dests ...Destination) NodeRates {
	return NodeRates{From: from, Blocks: [][][]Destination{{dests}}}
}

// Layout describes a file to write.
type Layout struct {
	IDReference         string
	Type                Type
	GenderDataType      GenderDataType
	AgesYears           []float64 // nil: key omitted, single MaxHumanAge bucket
	Interpolation       rates.InterpolationType
	DestinationsPerNode int // 0: Type.DefaultDestinations()
}

// WriteFile writes binPath and binPath.json so that a File configured with
// l.Type reads back exactly the given rates. Nodes are laid out in the
// order given. Short blocks are padded with id 0.
func WriteFile(binPath string, l Layout, nodeRates []NodeRates) error {
	dest := l.DestinationsPerNode
	if dest == 0 {
		dest = l.Type.DefaultDestinations()
	}
	if dest <= 0 || dest > MaxDestinations {
		return fmt.Errorf("migration: WriteFile: %d destinations: %w", dest, ErrDatavalueCount)
	}
	ages := 1
	if l.AgesYears != nil {
		ages = len(l.AgesYears)
	}
	chunks := l.GenderDataType.chunks()

	blockSize := int64(dest) * recordSize
	if len(nodeRates) > 0 {
		if _, err := nodeOffset(len(nodeRates)-1, blockSize); err != nil {
			return err
		}
	}
	ageSize := int64(len(nodeRates)) * blockSize
	genderSize := int64(ages) * ageSize
	buf := make([]byte, int64(chunks)*genderSize)

	offsets := make([]byte, 0, len(nodeRates)*offsetWidth)
	for n, nr := range nodeRates {
		nodeOff := int64(n) * blockSize
		off, err := nodeOffset(n, blockSize)
		if err != nil {
			return err
		}
		offsets = fmt.Appendf(offsets, "%08X%08X", nr.From, off)

		if len(nr.Blocks) != chunks {
			return fmt.Errorf("migration: WriteFile: node %d has %d gender chunks, layout needs %d: %w",
				nr.From, len(nr.Blocks), chunks, ErrGenderTables)
		}
		for g, perAge := range nr.Blocks {
			if len(perAge) != ages {
				return fmt.Errorf("migration: WriteFile: node %d has %d age blocks, layout needs %d: %w",
					nr.From, len(perAge), ages, ErrAgesYears)
			}
			for a, ds := range perAge {
				if len(ds) > dest {
					return fmt.Errorf("migration: WriteFile: node %d lists %d destinations: %w", nr.From, len(ds), ErrDatavalueCount)
				}
				base := int64(g)*genderSize + int64(a)*ageSize + nodeOff
				for i, d := range ds {
					binary.LittleEndian.PutUint32(buf[base+int64(i)*4:], d.To)
					binary.LittleEndian.PutUint64(buf[base+int64(dest)*4+int64(i)*8:], math.Float64bits(d.Rate))
				}
			}
		}
	}

	meta, err := metadataJSON(l, dest, len(nodeRates), string(offsets))
	if err != nil {
		return err
	}
	if err = os.WriteFile(binPath, buf, 0o644); err != nil {
		return fmt.Errorf("migration: WriteFile: %w", err)
	}
	if err = os.WriteFile(binPath+".json", meta, 0o644); err != nil {
		return fmt.Errorf("migration: WriteFile: %w", err)
	}
	return nil
}

// nodeOffset is the offset of the n-th node block. NodeOffsets stores it in
// eight hex digits, so it must fit a uint32.
func nodeOffset(n int, blockSize int64) (uint32, error) {
	off := int64(n) * blockSize
	if off < 0 || off > math.MaxUint32 {
		return 0, fmt.Errorf("migration: WriteFile: node %d offset %d exceeds %d: %w", n, off, uint64(math.MaxUint32), ErrOffsetRange)
	}
	return uint32(off), nil
}

func metadataJSON(l Layout, dest, nodeCount int, offsets string) ([]byte, error) {
	type kv struct {
		path  string
		value any
	}
	sets := []kv{
		{keyMetadata + "." + keyIDReference, l.IDReference},
		{keyMetadata + "." + keyNodeCount, nodeCount},
		{keyMetadata + "." + keyDatavalueCount, dest},
		{keyMetadata + "." + keyMigrationType, l.Type.String()},
		{keyMetadata + "." + keyGenderDataType, l.GenderDataType.String()},
		{keyMetadata + "." + keyInterpolationType, l.Interpolation.String()},
		{keyMetadata + ".Tool", "epiroute"},
		{keyNodeOffsets, offsets},
	}
	if l.AgesYears != nil {
		sets = append(sets, kv{keyMetadata + "." + keyAgesYears, l.AgesYears})
	}

	doc := []byte("{}")
	for _, s := range sets {
		var err error
		if doc, err = sjson.SetBytes(doc, s.path, s.value); err != nil {
			return nil, fmt.Errorf("migration: metadata %s: %w", s.path, err)
		}
	}
	return doc, nil
}
