package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lucent-lang/erasure/ir"
)

// reportEntry is the per-symbol line of the rendered report: reachable always true for every
// entry written (symbols that are merely argument-used but never reachable cannot occur, per
// spec §4.4), used is the ascending used-argument-index list (possibly empty).
type reportEntry struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Used   []int  `json:"used" yaml:"used"`
}

type report struct {
	Reachable []reportEntry `json:"reachable" yaml:"reachable"`
}

func buildReport(reachable []ir.Name, used map[ir.Name][]int) report {
	names := append([]ir.Name(nil), reachable...)
	sort.Slice(names, func(i, j int) bool { return names[i].Less(names[j]) })

	entries := make([]reportEntry, 0, len(names))
	for _, n := range names {
		entries = append(entries, reportEntry{Symbol: n.String(), Used: used[n]})
	}
	return report{Reachable: entries}
}

// writeReport renders r to w in the requested format ("json", the default, or "yaml").
func writeReport(w io.Writer, r report, format string) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(r)
	default:
		return fmt.Errorf("unknown output format %q (want \"json\" or \"yaml\")", format)
	}
}
