// Package diagnose inspects a lookup file and reports payload statistics,
// outliers, and metadata cross-check results.
package diagnose

import (
	"os"
	"sort"

	"inlay/internal/catalog"
	"inlay/internal/lookup"
)

// shortPayloadChars flags entries whose base64 field is suspiciously small,
// usually a sign the source file was truncated or empty.
const shortPayloadChars = 1000

// outlierCount is how many smallest/largest entries the report keeps.
const outlierCount = 5

// EntrySize describes one entry's payload size.
type EntrySize struct {
	Key string
	// Chars counts the full base64 field including the data: URI prefix.
	Chars int
	// ApproxOriginalBytes estimates the source file size from the payload.
	ApproxOriginalBytes int64
}

// Report is the full diagnostic result.
type Report struct {
	Path      string
	FileBytes int64
	Entries   int

	MinChars   int
	MaxChars   int
	MeanChars  int
	TotalChars int64

	Smallest []EntrySize
	Largest  []EntrySize
	Short    []EntrySize

	// MetadataChecked is true when a catalogue was available to cross-check.
	MetadataChecked bool
	// MissingKeys are catalogue stems absent from the lookup, sorted.
	MissingKeys []string
}

// Analyze builds a report for the lookup at path. cat may be nil when no
// metadata CSV is available; the cross-check section is skipped then.
func Analyze(path string, file *lookup.File, cat catalog.Catalog) Report {
	report := Report{Path: path, Entries: len(file.Images)}

	if info, err := os.Stat(path); err == nil {
		report.FileBytes = info.Size()
	}

	sizes := make([]EntrySize, 0, len(file.Images))
	for key, entry := range file.Images {
		chars := len(entry.DataURI)
		sizes = append(sizes, EntrySize{
			Key:   key,
			Chars: chars,
			// base64 encodes 3 bytes into 4 chars.
			ApproxOriginalBytes: int64(chars) * 3 / 4,
		})
	}
	sort.Slice(sizes, func(i, j int) bool {
		if sizes[i].Chars != sizes[j].Chars {
			return sizes[i].Chars < sizes[j].Chars
		}
		return sizes[i].Key < sizes[j].Key
	})

	for _, size := range sizes {
		report.TotalChars += int64(size.Chars)
		if size.Chars < shortPayloadChars {
			report.Short = append(report.Short, size)
		}
	}
	if len(sizes) > 0 {
		report.MinChars = sizes[0].Chars
		report.MaxChars = sizes[len(sizes)-1].Chars
		report.MeanChars = int(report.TotalChars / int64(len(sizes)))

		n := outlierCount
		if n > len(sizes) {
			n = len(sizes)
		}
		report.Smallest = append(report.Smallest, sizes[:n]...)
		largest := make([]EntrySize, n)
		copy(largest, sizes[len(sizes)-n:])
		// Largest shown descending.
		for i, j := 0, len(largest)-1; i < j; i, j = i+1, j-1 {
			largest[i], largest[j] = largest[j], largest[i]
		}
		report.Largest = largest
	}

	if cat != nil {
		report.MetadataChecked = true
		for stem := range cat {
			if _, ok := file.Images[stem]; !ok {
				report.MissingKeys = append(report.MissingKeys, stem)
			}
		}
		sort.Strings(report.MissingKeys)
	}

	return report
}
