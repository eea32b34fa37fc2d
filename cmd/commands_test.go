package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-resolver/internal/config"
	"github.com/sells-group/lead-resolver/internal/fitscore"
	"github.com/sells-group/lead-resolver/internal/leadio"
	"github.com/sells-group/lead-resolver/internal/model"
	"github.com/sells-group/lead-resolver/internal/resolve"
)

// phoneDirectory returns one listing for any query carrying its phone.
type phoneDirectory struct {
	mu      sync.Mutex
	phone   string
	profile *model.CandidateProfile
	calls   int
}

func (d *phoneDirectory) Search(_ context.Context, q resolve.Query) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if strings.Contains(q.Text, d.phone) {
		return d.profile.PlaceID, nil
	}
	return "", nil
}

func (d *phoneDirectory) Details(_ context.Context, id string) (*model.CandidateProfile, error) {
	if id != d.profile.PlaceID {
		return nil, nil
	}
	p := *d.profile
	return &p, nil
}

func roofingDirectory() *phoneDirectory {
	return &phoneDirectory{
		phone: "5551234567",
		profile: &model.CandidateProfile{
			PlaceID:          "p1",
			Name:             "ABC Roofing LLC",
			Phone:            "5551234567",
			FormattedAddress: "100 Main St, Austin, TX 78701, USA",
			City:             "Austin",
			State:            "TX",
			Zip:              "78701",
			Categories:       []string{"roofing_contractor"},
			ReviewCount:      31,
			Operational:      true,
		},
	}
}

func TestRunBatchFile_JSONL(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "leads.csv")
	csv := "Business Name,Phone,City,State\n" +
		"ABC Roofing,+15551234567,Austin,TX\n" +
		"Zed Plumbing,+15559999999,Austin,TX\n" +
		",+15550000000,Austin,TX\n"
	require.NoError(t, os.WriteFile(input, []byte(csv), 0644))

	r := resolve.New(roofingDirectory())
	var buf bytes.Buffer
	stats, err := runBatchFile(context.Background(), r, batchJob{
		Input:       input,
		Format:      "jsonl",
		Concurrency: 2,
	}, &buf)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Matched)
	assert.Equal(t, 1, stats.Unmatched)
	assert.Zero(t, stats.Failed)
	assert.Equal(t, 1, stats.Lookups)
	assert.Greater(t, stats.Searches, 1)

	byName := make(map[string]leadio.Output)
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var out leadio.Output
		require.NoError(t, json.Unmarshal(sc.Bytes(), &out))
		byName[out.Name] = out
	}
	require.Len(t, byName, 2)

	abc := byName["ABC Roofing"]
	assert.Equal(t, "p1", abc.PlaceID)
	assert.Equal(t, resolve.StrategyPhone, abc.Strategy)
	assert.Empty(t, byName["Zed Plumbing"].PlaceID)
}

func TestRunBatchFile_LimitAndCSV(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "leads.csv")
	csv := "name,phone\nABC Roofing,+15551234567\nZed Plumbing,+15559999999\n"
	require.NoError(t, os.WriteFile(input, []byte(csv), 0644))

	var buf bytes.Buffer
	stats, err := runBatchFile(context.Background(), resolve.New(roofingDirectory()), batchJob{
		Input:       input,
		Format:      "csv",
		Concurrency: 1,
		Limit:       1,
	}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2) // header + one lead
	assert.Contains(t, lines[1], "ABC Roofing")
}

func TestRunBatchFile_BadFormat(t *testing.T) {
	_, err := runBatchFile(context.Background(), resolve.New(roofingDirectory()), batchJob{
		Input:  "unused.csv",
		Format: "xml",
	}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRunBatchFile_MissingInput(t *testing.T) {
	_, err := runBatchFile(context.Background(), resolve.New(roofingDirectory()), batchJob{
		Input:  filepath.Join(t.TempDir(), "nope.csv"),
		Format: "jsonl",
	}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestWriteResolution(t *testing.T) {
	res := &resolve.Result{
		ID:    "res-1",
		Lead:  model.LeadRecord{Name: "ABC Roofing"},
		Score: fitscore.Breakdown{Total: 35, Quality: "D"},
	}

	var full bytes.Buffer
	require.NoError(t, writeResolution(&full, res, false))
	var out map[string]any
	require.NoError(t, json.Unmarshal(full.Bytes(), &out))
	assert.Equal(t, "res-1", out["resolution_id"])
	assert.InDelta(t, 35, out["fit_score"], 0.001)

	var crm bytes.Buffer
	require.NoError(t, writeResolution(&crm, res, true))
	var fields map[string]any
	require.NoError(t, json.Unmarshal(crm.Bytes(), &fields))
	assert.Equal(t, "D", fields[leadio.CRMQualityTier])
	assert.NotContains(t, fields, "Phone")
}

func TestScoreBundle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"domain":{"age_years":9}}`), 0644))

	var buf bytes.Buffer
	require.NoError(t, scoreBundle(&buf, path, ""))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.InDelta(t, 20, out["business_age"], 0.001)
	assert.InDelta(t, 20, out["total"], 0.001)
}

func TestScoreBundle_BadTiers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	err := scoreBundle(&bytes.Buffer{}, path, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInitResolver_RequiresKey(t *testing.T) {
	c := &config.Config{}
	c.Places.BaseURL = "https://places.googleapis.com/v1"
	c.Resolver.TimeoutSecs = 10
	c.Resolver.MaxAttempts = 4
	c.Resolver.GeoBiasRadiusM = 50000
	c.Log.Format = "json"

	_, err := initResolver(c, "resolve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "places.key is required")

	c.Places.Key = "test-key"
	r, err := initResolver(c, "resolve")
	require.NoError(t, err)
	assert.NotNil(t, r)
}
