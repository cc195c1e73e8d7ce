// Package report renders a clustering result as JSON.
package report

import (
	"encoding/json"
	"io"

	"gonum.org/v1/gonum/stat"

	"github.com/TrevorS/optics"
)

// Report is the JSON document written by the optics command.
type Report struct {
	RunID        string    `json:"run_id"`
	Points       int       `json:"points"`
	Radius       float64   `json:"radius"`
	MinPts       int       `json:"min_pts"`
	Rebuilt      bool      `json:"rebuilt"`
	ClusterSizes []int     `json:"cluster_sizes"`
	Clusters     [][]int   `json:"clusters"`
	Noise        []int     `json:"noise"`
	Labels       []int     `json:"labels"`
	Ordering     []float64 `json:"ordering"`
	Borders      []int     `json:"borders,omitempty"`
	Summary      Summary   `json:"summary"`
}

// Summary describes the distribution of the reachability plot.
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Max    float64 `json:"max"`
}

// New builds a report for res.
func New(runID string, res *optics.Result) Report {
	rep := Report{
		RunID:        runID,
		Points:       len(res.Labels),
		Radius:       res.Radius,
		MinPts:       res.Order.MinPts,
		Rebuilt:      res.Rebuilt,
		ClusterSizes: res.Sizes(),
		Clusters:     nonNil(res.Clusters),
		Noise:        nonNilInts(res.Noise),
		Labels:       res.Labels,
		Ordering:     res.Ordering,
		Borders:      res.Borders,
	}
	if len(res.Ordering) > 0 {
		rep.Summary.Max = res.Ordering.Max()
		rep.Summary.Mean = stat.Mean(res.Ordering, nil)
	}
	if len(res.Ordering) > 1 {
		rep.Summary.StdDev = stat.StdDev(res.Ordering, nil)
	}
	return rep
}

// Write encodes rep as indented JSON.
func Write(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func nonNil(c [][]int) [][]int {
	if c == nil {
		return [][]int{}
	}
	return c
}

func nonNilInts(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
