package roadmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/roadtower/pkg/errors"
)

// envelope captures every shape the roadmap service has been seen to return.
type envelope struct {
	Roadmap     *Roadmap `json:"roadmap"`
	RoadmapData *Roadmap `json:"roadmap_data"`
	Phases      []Phase  `json:"phases"`
}

// Parse decodes a roadmap payload.
//
// The "roadmap" key takes precedence over "roadmap_data", which takes
// precedence over a bare "phases" array. A payload that is valid JSON but
// carries none of these keys decodes to an empty document. Invalid JSON
// yields an error with code [errors.ErrCodeMalformedPayload]; an empty
// payload yields [errors.ErrCodeMissingPayload].
func Parse(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New(errors.ErrCodeMissingPayload, "no roadmap data found")
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedPayload, err, "malformed roadmap JSON data")
	}

	doc := &Document{}
	switch {
	case env.Roadmap != nil:
		doc.Roadmap = *env.Roadmap
	case env.RoadmapData != nil:
		doc.Roadmap = *env.RoadmapData
	default:
		doc.Roadmap.Phases = env.Phases
	}
	return doc, nil
}

// Read decodes a roadmap payload from r.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read roadmap: %w", err)
	}
	return Parse(data)
}

// ReadFile decodes the roadmap payload stored at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	return Parse(data)
}

// Marshal encodes d in the canonical {"roadmap": {...}} envelope.
func Marshal(d *Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
