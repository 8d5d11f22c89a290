package render

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	woffSignature  = 0x774F4646 // "wOFF"
	woff2Signature = 0x774F4632 // "wOF2"

	woffHeaderSize = 44
	woffEntrySize  = 20
	sfntHeaderSize = 12
	sfntEntrySize  = 16

	maxSfntSize = 32 << 20
)

var (
	// ErrWOFF2Unsupported is returned for WOFF 2.0 input.
	ErrWOFF2Unsupported = errors.New("woff2 fonts are not supported")

	errCorruptWOFF = errors.New("corrupt woff data")
)

func isWOFF(data []byte) bool {
	return len(data) >= 4 && binary.BigEndian.Uint32(data) == woffSignature
}

func isWOFF2(data []byte) bool {
	return len(data) >= 4 && binary.BigEndian.Uint32(data) == woff2Signature
}

type woffEntry struct {
	tag      uint32
	offset   uint32
	compLen  uint32
	origLen  uint32
	checksum uint32
}

// decodeWOFF unwraps a WOFF 1.0 file into the sfnt bytes it carries.
// Compressed tables are inflated; metadata and private blocks are dropped.
func decodeWOFF(data []byte) ([]byte, error) {
	be := binary.BigEndian

	if len(data) < woffHeaderSize {
		return nil, fmt.Errorf("%w: short header", errCorruptWOFF)
	}

	if be.Uint32(data) != woffSignature {
		return nil, fmt.Errorf("%w: bad signature", errCorruptWOFF)
	}

	flavor := be.Uint32(data[4:])
	numTables := int(be.Uint16(data[12:]))

	if numTables == 0 || len(data) < woffHeaderSize+numTables*woffEntrySize {
		return nil, fmt.Errorf("%w: bad table directory", errCorruptWOFF)
	}

	entries := make([]woffEntry, numTables)

	var total uint64

	for i := range entries {
		p := data[woffHeaderSize+i*woffEntrySize:]
		e := woffEntry{
			tag:      be.Uint32(p[0:]),
			offset:   be.Uint32(p[4:]),
			compLen:  be.Uint32(p[8:]),
			origLen:  be.Uint32(p[12:]),
			checksum: be.Uint32(p[16:]),
		}

		if uint64(e.offset)+uint64(e.compLen) > uint64(len(data)) || e.compLen > e.origLen {
			return nil, fmt.Errorf("%w: table %d out of range", errCorruptWOFF, i)
		}

		total += uint64(e.origLen) + 3
		entries[i] = e
	}

	if total > maxSfntSize {
		return nil, fmt.Errorf("%w: tables too large", errCorruptWOFF)
	}

	dirSize := sfntHeaderSize + numTables*sfntEntrySize
	out := make([]byte, dirSize, dirSize+int(total))

	searchRange, entrySelector := 1, 0
	for searchRange*2 <= numTables {
		searchRange *= 2
		entrySelector++
	}

	be.PutUint32(out[0:], flavor)
	be.PutUint16(out[4:], uint16(numTables))
	be.PutUint16(out[6:], uint16(searchRange*sfntEntrySize))
	be.PutUint16(out[8:], uint16(entrySelector))
	be.PutUint16(out[10:], uint16((numTables-searchRange)*sfntEntrySize))

	for i, e := range entries {
		src := data[e.offset : e.offset+e.compLen]

		table := src
		if e.compLen < e.origLen {
			var err error

			table, err = inflate(src, e.origLen)
			if err != nil {
				return nil, fmt.Errorf("%w: table %d: %v", errCorruptWOFF, i, err)
			}
		}

		offset := len(out)
		out = append(out, table...)

		for len(out)%4 != 0 {
			out = append(out, 0)
		}

		rec := out[sfntHeaderSize+i*sfntEntrySize:]
		be.PutUint32(rec[0:], e.tag)
		be.PutUint32(rec[4:], e.checksum)
		be.PutUint32(rec[8:], uint32(offset))
		be.PutUint32(rec[12:], e.origLen)
	}

	return out, nil
}

func inflate(src []byte, size uint32) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	defer func() { _ = zr.Close() }()

	buf := make([]byte, size)

	_, err = io.ReadFull(zr, buf)
	if err != nil {
		return nil, err
	}

	return buf, nil
}
