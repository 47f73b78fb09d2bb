// Package snapshot persists harness worlds as zstd-compressed files: a JSON
// header line followed by the gob-encoded snapshot.
package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/bc-engines/internal/core"
)

// Version is the current snapshot format version.
const Version = 1

// ErrVersion is returned for snapshots written by an unknown format version.
var ErrVersion = errors.New("snapshot: unsupported version")

// Header is the first line of a snapshot, readable without decoding the body.
type Header struct {
	Version int    `json:"version"`
	Tick    uint64 `json:"tick"`
	Tiles   int    `json:"tiles"`
	Sinks   int    `json:"sinks"`
}

// Snapshot is a full harness world.
type Snapshot struct {
	Header Header
	Tiles  []Tile
	Sinks  []Sink
}

// Tile is a placed engine and its persisted state.
type Tile struct {
	Pos   core.BlockPos
	Kind  string
	Side  int
	State []byte
}

// Sink is an energy consumer.
type Sink struct {
	Pos        core.BlockPos
	Capacity   float64
	Received   float64
	Deliveries int
}

// New builds a snapshot and fills in its header.
func New(tick uint64, tiles []Tile, sinks []Sink) Snapshot {
	return Snapshot{
		Header: Header{Version: Version, Tick: tick, Tiles: len(tiles), Sinks: len(sinks)},
		Tiles:  tiles,
		Sinks:  sinks,
	}
}

// Encode writes a compressed snapshot.
func Encode(w io.Writer, snap Snapshot) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("snapshot: cannot create encoder: %w", err)
	}

	bw := bufio.NewWriterSize(enc, 64*1024)
	hb, err := json.Marshal(snap.Header)
	if err != nil {
		enc.Close()
		return fmt.Errorf("snapshot: header: %w", err)
	}
	if _, err := bw.Write(append(hb, '\n')); err != nil {
		enc.Close()
		return fmt.Errorf("snapshot: header: %w", err)
	}
	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		enc.Close()
		return fmt.Errorf("snapshot: gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return fmt.Errorf("snapshot: flush: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("snapshot: close encoder: %w", err)
	}
	return nil
}

// Decode reads a compressed snapshot.
func Decode(r io.Reader) (Snapshot, error) {
	var snap Snapshot

	dec, err := zstd.NewReader(r)
	if err != nil {
		return snap, fmt.Errorf("snapshot: cannot create decoder: %w", err)
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return snap, fmt.Errorf("snapshot: header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(line, &h); err != nil {
		return snap, fmt.Errorf("snapshot: header: %w", err)
	}
	if h.Version != Version {
		return snap, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("snapshot: gob decode: %w", err)
	}
	return snap, nil
}

// ReadHeader decodes only the header line of a snapshot.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header

	dec, err := zstd.NewReader(r)
	if err != nil {
		return h, fmt.Errorf("snapshot: cannot create decoder: %w", err)
	}
	defer dec.Close()

	line, err := bufio.NewReader(dec).ReadBytes('\n')
	if err != nil {
		return h, fmt.Errorf("snapshot: header: %w", err)
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, fmt.Errorf("snapshot: header: %w", err)
	}
	return h, nil
}

// WriteFile writes a snapshot to path, creating parent directories.
func WriteFile(path string, snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("snapshot: cannot create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("snapshot: cannot create file: %w", err)
	}
	if err := Encode(f, snap); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads a snapshot from path.
func ReadFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: cannot open file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
