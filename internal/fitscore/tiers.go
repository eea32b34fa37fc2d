package fitscore

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Tier awards Points once a signal reaches Min.
type Tier struct {
	Min    float64 `yaml:"min"`
	Points int     `yaml:"points"`
}

// Tiers is an ascending list of thresholds for one signal.
type Tiers []Tier

// Points returns the points of the highest tier whose Min is <= v. A value
// exactly on a boundary belongs to that boundary's tier; anything below the
// first threshold scores zero.
func (ts Tiers) Points(v float64) int {
	pts := 0
	for _, t := range ts {
		if v >= t.Min {
			pts = t.Points
		}
	}
	return pts
}

// Max returns the largest award in the list.
func (ts Tiers) Max() int {
	maxPts := 0
	for _, t := range ts {
		if t.Points > maxPts {
			maxPts = t.Points
		}
	}
	return maxPts
}

// QualityCut maps a minimum total to a quality grade.
type QualityCut struct {
	Grade string `yaml:"grade"`
	Min   int    `yaml:"min"`
}

// WebsitePoints scores a resolved website by kind.
type WebsitePoints struct {
	Custom int `yaml:"custom"`
	Hosted int `yaml:"hosted"`
}

// Table holds every threshold used by the calculator.
type Table struct {
	Match     int            `yaml:"match"`
	Website   WebsitePoints  `yaml:"website"`
	Reviews   Tiers          `yaml:"reviews"`
	Age       Tiers          `yaml:"age"`
	Employees Tiers          `yaml:"employees"`
	Location  map[string]int `yaml:"location"`
	Tracking  Tiers          `yaml:"tracking"`
	Quality   []QualityCut   `yaml:"quality"`

	// FallbackGrade applies below every quality cut.
	FallbackGrade string `yaml:"fallback_grade"`
}

// DefaultTable returns the standard thresholds. Component maxima sum to 100.
func DefaultTable() Table {
	return Table{
		Match:   10,
		Website: WebsitePoints{Custom: 15, Hosted: 5},
		Reviews: Tiers{{Min: 1, Points: 5}, {Min: 15, Points: 10}, {Min: 50, Points: 15}},

		// Years in business.
		Age:       Tiers{{Min: 2, Points: 8}, {Min: 4, Points: 14}, {Min: 8, Points: 20}},
		Employees: Tiers{{Min: 1, Points: 5}, {Min: 5, Points: 10}, {Min: 20, Points: 15}},
		Tracking:  Tiers{{Min: 1, Points: 5}, {Min: 2, Points: 10}},

		Location: map[string]int{
			"storefront":   15,
			"office":       15,
			"service_area": 8,
		},

		Quality:       []QualityCut{{Grade: "A", Min: 80}, {Grade: "B", Min: 60}, {Grade: "C", Min: 40}},
		FallbackGrade: "D",
	}
}

// LocationMax returns the largest location award.
func (t Table) LocationMax() int {
	maxPts := 0
	for _, p := range t.Location {
		if p > maxPts {
			maxPts = p
		}
	}
	return maxPts
}

// MaxTotal is the sum of every component's maximum.
func (t Table) MaxTotal() int {
	website := t.Website.Custom
	if t.Website.Hosted > website {
		website = t.Website.Hosted
	}
	return t.Match + website + t.Reviews.Max() + t.Age.Max() +
		t.Employees.Max() + t.LocationMax() + t.Tracking.Max()
}

// Grade maps a total to its quality grade.
func (t Table) Grade(total int) string {
	for _, c := range t.Quality {
		if total >= c.Min {
			return c.Grade
		}
	}
	return t.FallbackGrade
}

// Validate checks that thresholds ascend and quality cuts descend.
func (t Table) Validate() error {
	var errs []string
	for name, ts := range map[string]Tiers{
		"reviews": t.Reviews, "age": t.Age, "employees": t.Employees, "tracking": t.Tracking,
	} {
		if !sort.SliceIsSorted(ts, func(i, j int) bool { return ts[i].Min < ts[j].Min }) {
			errs = append(errs, fmt.Sprintf("%s thresholds must ascend", name))
		}
		for _, tier := range ts {
			if tier.Points < 0 {
				errs = append(errs, fmt.Sprintf("%s points must be non-negative", name))
				break
			}
		}
	}
	for i := 1; i < len(t.Quality); i++ {
		if t.Quality[i].Min >= t.Quality[i-1].Min {
			errs = append(errs, "quality cuts must descend")
			break
		}
	}
	if t.FallbackGrade == "" {
		errs = append(errs, "fallback_grade is required")
	}
	if len(errs) > 0 {
		sort.Strings(errs)
		return eris.Errorf("fitscore: invalid table: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LoadTable reads a YAML override file. Keys absent from the file keep
// their defaults. An empty path returns DefaultTable.
func LoadTable(path string) (Table, error) {
	table := DefaultTable()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, eris.Wrapf(err, "fitscore: read tiers %s", path)
	}

	var wrapper struct {
		Score *Table `yaml:"score"`
	}
	wrapper.Score = &table
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return Table{}, eris.Wrap(err, "fitscore: parse tiers")
	}
	if err := table.Validate(); err != nil {
		return Table{}, err
	}
	return table, nil
}
