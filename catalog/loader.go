package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/paulwanjiku-hub/Kiambu-house-hunter/core/logger"
	"log/slog"
)

// expected header columns; extra columns are ignored, missing ones read as empty.
const (
	colTitle    = "title"
	colLocation = "location"
	colImageURL = "image_url"
	colURL      = "url"
	colBedrooms = "bedrooms"
	colPrice    = "price"
)

// LoadFile reads listings from the CSV file at path. A missing file is
// not an error: it yields an empty catalog and a warning. Malformed rows
// degrade field-by-field and never abort the load.
func LoadFile(path string) ([]Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn(context.Background(), "catalog", "load.missing",
				slog.String("path", path),
			)
			return nil, nil
		}
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()

	listings, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}

	logger.Info(context.Background(), "catalog", "load.complete",
		slog.String("path", path),
		slog.Int("count", len(listings)),
	)
	return listings, nil
}

func parse(r io.Reader) ([]Listing, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var listings []Listing
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// skip the broken row, keep the rest of the file
			logger.Warn(context.Background(), "catalog", "load.row_skipped",
				slog.String("err", err.Error()),
			)
			continue
		}
		listings = append(listings, Listing{
			Title:    strings.TrimSpace(field(row, colTitle)),
			Location: TitleCase(field(row, colLocation)),
			Bedrooms: NormalizeBedrooms(field(row, colBedrooms)),
			Price:    ParsePrice(field(row, colPrice)),
			ImageURL: strings.TrimSpace(field(row, colImageURL)),
			URL:      strings.TrimSpace(field(row, colURL)),
		})
	}
	return listings, nil
}
