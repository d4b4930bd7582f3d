package source

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML declaration file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if f.Path == "" {
		f.Path = path
	}

	return f, nil
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse declaration YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults assigns sequential positions to declarations and members the
// parser left without a range, so that every node has an ordered position
// and every body encloses its members.
func applyDefaults(f *File) {
	pos := 0
	for i := range f.Declarations {
		fillDeclaration(&f.Declarations[i], &pos)
	}
}

func fillDeclaration(d *RawDeclaration, pos *int) {
	missing := d.Range == (Range{})
	if missing {
		*pos++
		d.Range.Start = *pos
	} else {
		*pos = max(*pos, d.Range.Start)
	}

	for i := range d.Members {
		m := &d.Members[i]
		if m.Range == (Range{}) {
			*pos++
			m.Range.Start = *pos

			if m.Declaration != nil {
				fillDeclaration(m.Declaration, pos)
			}

			*pos++
			m.Range.End = *pos
		} else {
			*pos = max(*pos, m.Range.Start)
			if m.Declaration != nil {
				fillDeclaration(m.Declaration, pos)
			}
		}
	}

	if missing {
		*pos++
		d.Range.End = *pos
	}

	*pos = max(*pos, d.Range.End)
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}
