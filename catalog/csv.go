package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hibafl/filmo/core"
)

// Source column names, matching the IMDb export the assistant was built
// around. Columns missing from the file are defaulted per record so absence
// never causes a lookup failure, only an empty match.
const (
	colSynopsis = "resume"
	colTitle    = "nom"
	colYear     = "date"
	colRating   = "rate"
	colCover    = "cover"
	colGenre    = "genre"
	colDirector = "director"
	colIMDbID   = "imdb_id"
)

// Load reads the catalog from a local file path or an http(s) URL. The
// catalog is loaded in full, once; there is no partial or streaming load.
func Load(source string) (*Store, error) {
	var r io.ReadCloser
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		client := &http.Client{Timeout: 60 * time.Second}
		resp, err := client.Get(source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch catalog from %s: %w", source, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("failed to fetch catalog from %s: status %d", source, resp.StatusCode)
		}
		r = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open catalog file: %w", err)
		}
		r = f
	}
	defer r.Close()

	return Read(r)
}

// Read parses CSV catalog data into a Store.
func Read(r io.Reader) (*Store, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows may be ragged; missing cells default

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var records []core.MovieRecord
	rowNum := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog row %d: %w", rowNum, err)
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		rec := core.MovieRecord{
			ID:         strconv.Itoa(rowNum),
			Title:      field(colTitle),
			Synopsis:   field(colSynopsis),
			CoverURL:   field(colCover),
			Genres:     field(colGenre),
			Director:   field(colDirector),
			ExternalID: field(colIMDbID),
			Rating:     math.NaN(),
		}

		if y, err := strconv.Atoi(field(colYear)); err == nil {
			rec.ReleaseYear = y
		}
		if r, err := strconv.ParseFloat(field(colRating), 64); err == nil {
			rec.Rating = r
		}

		records = append(records, rec)
		rowNum++
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	return NewStore(records), nil
}
