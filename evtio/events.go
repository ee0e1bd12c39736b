/*
 * events.go, part of gosolv.
 *
 * Copyright 2026 The gosolv authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package evtio reads and writes coordination event tables, as CSV files
// that can be compressed with zstd or gzip, and system descriptions, as
// YAML files.
package evtio

import (
	"bufio"
	"compress/gzip"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	solv "github.com/rmera/gosolv"
)

// Header contains the columns of an event table file, in the order they
// are written. When reading, the order doesn't matter and other columns are
// ignored.
var Header = []string{"frame", "solute", "atom", "res_name", "res_ix", "dist"}

// ReadEvents reads a CSV event table from r.
func ReadEvents(r io.Reader) (*solv.Table, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, solv.NewError(solv.ErrSchema, "evtio.ReadEvents", "empty input")
		}
		return nil, solv.Errorf(solv.ErrSchema, "evtio.ReadEvents", "header: %v", err)
	}
	col := make(map[string]int, len(head))
	for i, v := range head {
		col[strings.TrimSpace(v)] = i
	}
	pos := make([]int, len(Header))
	for i, v := range Header {
		p, ok := col[v]
		if !ok {
			return nil, solv.Errorf(solv.ErrSchema, "evtio.ReadEvents", "missing column %q", v)
		}
		pos[i] = p
	}
	events := make([]solv.Event, 0)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, solv.Errorf(solv.ErrSchema, "evtio.ReadEvents", "%v", err)
		}
		line, _ := cr.FieldPos(0)
		var e solv.Event
		ints := []*int{&e.Frame, &e.Solute, &e.Atom, nil, &e.ResIndex}
		for i, p := range ints {
			if p == nil {
				continue
			}
			*p, err = strconv.Atoi(strings.TrimSpace(rec[pos[i]]))
			if err != nil {
				return nil, solv.Errorf(solv.ErrSchema, "evtio.ReadEvents", "line %d, column %s: %v", line, Header[i], err)
			}
		}
		e.ResName = strings.TrimSpace(rec[pos[3]])
		e.Dist, err = strconv.ParseFloat(strings.TrimSpace(rec[pos[5]]), 64)
		if err != nil {
			return nil, solv.Errorf(solv.ErrSchema, "evtio.ReadEvents", "line %d, column dist: %v", line, err)
		}
		events = append(events, e)
	}
	T, err := solv.NewTable(events)
	if err != nil {
		return nil, solv.Decorate(err, "evtio.ReadEvents")
	}
	return T, nil
}

// WriteEvents writes T to w as CSV, with the columns in Header.
func WriteEvents(w io.Writer, T *solv.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	rec := make([]string, len(Header))
	for i := 0; i < T.Len(); i++ {
		e := T.Event(i)
		rec[0] = strconv.Itoa(e.Frame)
		rec[1] = strconv.Itoa(e.Solute)
		rec[2] = strconv.Itoa(e.Atom)
		rec[3] = e.ResName
		rec[4] = strconv.Itoa(e.ResIndex)
		rec[5] = strconv.FormatFloat(e.Dist, 'g', -1, 64)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadEventsFile reads an event table from the file name. Files ending in
// .zst are decompressed with zstd, and those ending in .gz, with gzip.
// Any other file is read as plain CSV.
func ReadEventsFile(name string) (*solv.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := newReader(name, bufio.NewReader(f))
	if err != nil {
		return nil, solv.Errorf(solv.ErrSchema, "evtio.ReadEventsFile", "%s: %v", name, err)
	}
	defer r.Close()
	T, err := ReadEvents(r)
	if err != nil {
		return nil, solv.Decorate(err, "evtio.ReadEventsFile")
	}
	return T, nil
}

// WriteEventsFile writes T to the file name, compressed as ReadEventsFile
// expects from the extension.
func WriteEventsFile(name string, T *solv.Table) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(f)
	w, err := newWriter(name, bw)
	if err != nil {
		return err
	}
	if err = WriteEvents(w, T); err != nil {
		w.Close()
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}
	return bw.Flush()
}

// zstd.Decoder has a Close method that returns nothing.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (Z zstdReadCloser) Close() error {
	Z.Decoder.Close()
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func newReader(name string, r io.Reader) (io.ReadCloser, error) {
	switch compression(name) {
	case "zst":
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdReadCloser{d}, nil
	case "gz":
		return gzip.NewReader(r)
	default:
		return io.NopCloser(r), nil
	}
}

func newWriter(name string, w io.Writer) (io.WriteCloser, error) {
	switch compression(name) {
	case "zst":
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	case "gz":
		return gzip.NewWriterLevel(w, gzip.BestCompression)
	default:
		return nopWriteCloser{w}, nil
	}
}

func compression(name string) string {
	name = strings.ToLower(name)
	switch {
	case strings.HasSuffix(name, ".zst"):
		return "zst"
	case strings.HasSuffix(name, ".gz"):
		return "gz"
	}
	return ""
}
