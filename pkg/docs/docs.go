// Package docs handles loading and writing document sets. A document set is
// an ordered sequence of text strings; where the documents come from (files,
// a corpus file with one document per line, a prior pipeline stage) is the
// caller's business.
package docs

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/textclean/pkg/log"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentReads bounds how many files are read at once when loading a
// document set from globs.
const maxConcurrentReads = 8

// Load reads one document per file matched by the given glob patterns.
// Patterns use doublestar syntax (e.g. "corpus/**/*.txt"). Matches are
// deduplicated and sorted so the document order is stable across runs.
func Load(ctx context.Context, patterns []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.Errorf("expanding glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)

	logger.Debug().Int("files", len(paths)).Msg("loading documents")

	console, hasConsole := log.MaybeFromContext(ctx)
	if hasConsole {
		console.StartLoadOperation(ctx, log.LoadOperation{
			Source: strings.Join(patterns, ", "),
			Files:  len(paths),
		})
		defer console.EndLoadOperation(ctx)
	}

	documents := make([]string, len(paths))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				if hasConsole {
					console.LogFileRead(ctx, log.FileRead{Path: path, Status: "failed", IsFailed: true})
				}
				return errors.Errorf("reading document %s: %w", path, err)
			}
			documents[i] = string(data)
			if hasConsole {
				read := log.FileRead{Path: path, Documents: 1, Bytes: len(data), Status: "loaded"}
				if strings.TrimSpace(string(data)) == "" {
					read.Status = "empty"
					read.IsEmpty = true
				}
				console.LogFileRead(ctx, read)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return documents, nil
}

// LoadLines reads a document set with one document per line, the common
// layout for a corpus exported from a table column.
func LoadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var documents []string
	for scanner.Scan() {
		documents = append(documents, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("scanning documents: %w", err)
	}
	return documents, nil
}

// WriteLines writes a document set with one document per line.
func WriteLines(w io.Writer, documents []string) error {
	bw := bufio.NewWriter(w)
	for _, doc := range documents {
		if _, err := bw.WriteString(doc); err != nil {
			return errors.Errorf("writing document: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return errors.Errorf("writing document: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Errorf("flushing documents: %w", err)
	}
	return nil
}

// Prune removes documents that are empty or consist only of whitespace. The
// surviving documents keep their relative order and are renumbered
// contiguously from 0; prior indices are not preserved.
func Prune(documents []string) []string {
	kept := make([]string, 0, len(documents))
	for _, doc := range documents {
		if strings.TrimSpace(doc) != "" {
			kept = append(kept, doc)
		}
	}
	return kept
}

// Checksum returns a hex digest of the document set. Documents are length
// prefixed so that ["ab",""] and ["a","b"] hash differently.
func Checksum(documents []string) string {
	h := sha256.New()
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(documents)))
	h.Write(lenBuf[:])
	for _, doc := range documents {
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(doc)))
		h.Write(lenBuf[:])
		h.Write([]byte(doc))
	}
	return hex.EncodeToString(h.Sum(nil))
}
