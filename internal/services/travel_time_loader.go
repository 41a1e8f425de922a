package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jszwec/csvutil"
)

type travelTimeFile struct {
	Routes []TravelTimeEntry `toml:"route"`
}

// LoadTravelTimeEntries reads extra table rows from a .toml or .csv file.
//
// TOML uses [[route]] tables; CSV needs a from,to,mode,duration header.
func LoadTravelTimeEntries(path string) ([]TravelTimeEntry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var f travelTimeFile
		if _, err := toml.DecodeFile(path, &f); err != nil {
			return nil, fmt.Errorf("decode travel time table %q: %w", path, err)
		}
		return f.Routes, nil
	case ".csv":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read travel time table %q: %w", path, err)
		}
		var entries []TravelTimeEntry
		if err := csvutil.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("decode travel time table %q: %w", path, err)
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("unsupported travel time table format %q (use .toml or .csv)", path)
	}
}
