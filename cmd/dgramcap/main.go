// Command dgramcap reads a Kongsberg EMX or KMA datagram file, auto-
// detecting which format it is, and optionally writes every decoded frame
// out as a compressed capture file for later offline replay.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fathomsonar/dgram/capture"
	"github.com/fathomsonar/dgram/emx"
	"github.com/fathomsonar/dgram/kma"
)

func main() {
	var (
		inPath       = flag.String("in", "", "path to an EMX or KMA datagram file (required)")
		outPath      = flag.String("out", "", "path to write a capture file (optional)")
		codecName    = flag.String("codec", "s2", "capture codec: none, lz4, s2, zstd")
		skipWC       = flag.Bool("skip-water-column", false, "skip decoding water-column records (EMX and KMA)")
		skipSound    = flag.Bool("skip-soundings", false, "skip decoding KMA #MRZ soundings")
		ignoreChksum = flag.Bool("ignore-checksum-errors", false, "surface EMX checksum mismatches instead of discarding them")
	)
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: dgramcap -in <file> [-out <capture-file>] [-codec none|lz4|s2|zstd]")
		os.Exit(2)
	}

	if err := run(*inPath, *outPath, *codecName, *skipWC, *skipSound, *ignoreChksum); err != nil {
		log.Fatal(err)
	}
}

func run(inPath, outPath, codecName string, skipWC, skipSound, ignoreChecksum bool) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("dgramcap: open %s: %w", inPath, err)
	}
	defer f.Close()

	var header [20]byte
	if _, err := io.ReadFull(f, header[:]); err != nil {
		return fmt.Errorf("dgramcap: read header: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("dgramcap: rewind: %w", err)
	}

	var writer *capture.Writer
	if outPath != "" {
		id, err := parseCodec(codecName)
		if err != nil {
			return err
		}
		outFile, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("dgramcap: create %s: %w", outPath, err)
		}
		defer outFile.Close()

		writer, err = capture.NewWriter(outFile, id)
		if err != nil {
			return fmt.Errorf("dgramcap: new capture writer: %w", err)
		}
		defer writer.Flush()
	}

	switch {
	case emx.IdentifyEMX(header[:]):
		return runEMX(f, writer, skipWC, ignoreChecksum)
	case kma.IdentifyKMA(header[:]):
		return runKMA(f, writer, skipWC, skipSound)
	default:
		return fmt.Errorf("dgramcap: %s does not look like a recognized EMX or KMA datagram stream", inPath)
	}
}

func parseCodec(name string) (capture.CodecID, error) {
	switch name {
	case "none":
		return capture.CodecNone, nil
	case "lz4":
		return capture.CodecLZ4, nil
	case "s2":
		return capture.CodecS2, nil
	case "zstd":
		return capture.CodecZstd, nil
	default:
		return 0, fmt.Errorf("dgramcap: unknown codec %q", name)
	}
}

func runEMX(f *os.File, writer *capture.Writer, skipWC, ignoreChecksum bool) error {
	s, err := emx.NewEMXStream(f,
		emx.WithIgnoreWaterColumn(skipWC),
		emx.WithIgnoreChecksum(ignoreChecksum),
	)
	if err != nil {
		return fmt.Errorf("dgramcap: open EMX stream: %w", err)
	}
	defer s.Close()

	counts := map[emx.RecordType]int{}
	for {
		rec, err := s.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("dgramcap: read EMX record: %w", err)
		}
		counts[rec.Type]++

		if writer != nil && rec.Raw != nil {
			if err := writer.Put(byte(rec.Type), rec.Raw); err != nil {
				return fmt.Errorf("dgramcap: write capture entry: %w", err)
			}
		}
	}

	fmt.Println("format: EMX")
	for t, n := range counts {
		fmt.Printf("  %-24s %8d\n", emx.DatagramName(t), n)
	}
	return nil
}

func runKMA(f *os.File, writer *capture.Writer, skipWC, skipSound bool) error {
	s, err := kma.NewKMAStream(f,
		kma.WithIgnoreWaterColumn(skipWC),
		kma.WithIgnoreSoundings(skipSound),
	)
	if err != nil {
		return fmt.Errorf("dgramcap: open KMA stream: %w", err)
	}
	defer s.Close()

	counts := map[kma.RecordType]int{}
	for {
		rec, err := s.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("dgramcap: read KMA record: %w", err)
		}
		counts[rec.Type]++

		if writer != nil && rec.Raw != nil {
			// capture.Entry.RecordType is a single byte; KMA's packed tag
			// always carries '#' as its low byte, so the second byte (the
			// tag's leading letter, e.g. 'M' for MRZ/MWC) is what actually
			// distinguishes record families within that one byte.
			if err := writer.Put(byte(rec.Type>>8), rec.Raw); err != nil {
				return fmt.Errorf("dgramcap: write capture entry: %w", err)
			}
		}
	}

	fmt.Println("format: KMA")
	for t, n := range counts {
		fmt.Printf("  %-24s %8d\n", kma.DatagramName(t), n)
	}
	return nil
}
