package main

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/tarm/serial"
)

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}

// compressedFile closes its encoder before the underlying file.
type compressedFile struct {
	*zstd.Encoder
	f *os.File
}

func (c *compressedFile) Close() error {
	if err := c.Encoder.Close(); err != nil {
		c.f.Close()
		return err
	}
	return c.f.Close()
}

// Sync writes any buffered output to the file as a complete zstd block.
func (c *compressedFile) Sync() error {
	if err := c.Encoder.Flush(); err != nil {
		return err
	}
	return c.f.Sync()
}

// syncSink pushes buffered output of a long-lived sink to its destination. Serial ports write through.
func syncSink(w io.Writer) error {
	if s, ok := w.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}

// openSink returns the destination for a program: the serial port if one is named, else the output file
// (zstd-compressed if its name ends in .zst), else stdout.
func openSink(port, output string, baud int) (io.WriteCloser, error) {
	switch {
	case port != "":
		s, err := serial.OpenPort(&serial.Config{Name: port, Baud: baud})
		if err != nil {
			return nil, err
		}
		return s, nil
	case output != "":
		f, err := os.Create(output)
		if err != nil {
			return nil, err
		}
		if !strings.HasSuffix(output, ".zst") {
			return f, nil
		}
		enc, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &compressedFile{Encoder: enc, f: f}, nil
	default:
		return nopCloser{os.Stdout}, nil
	}
}
