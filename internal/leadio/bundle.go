package leadio

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-resolver/internal/model"
)

// LoadBundle reads a JSON enrichment bundle for offline scoring.
func LoadBundle(path string) (*model.EnrichmentBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "leadio: read bundle %s", path)
	}
	var b model.EnrichmentBundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, eris.Wrap(err, "leadio: parse bundle")
	}
	if b.Location != "" && !b.Location.Valid() {
		return nil, eris.Errorf("leadio: unknown location %q", b.Location)
	}
	return &b, nil
}
