// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and reference only known metrics.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/chitai-gorod-qa/tools/dashgen/rules"
)

var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Result collects validation problems. Errors fail generation; warnings
// are reported only.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether there were no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Expr parses a PromQL expression and returns the metric names it selects
// that are not in known.
func Expr(expr string, known map[string]bool) ([]string, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, err
	}

	var unknown []string
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !isKnown(vs.Name, known) {
			unknown = append(unknown, vs.Name)
		}
		return nil
	})

	return unknown, nil
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// dashboardJSON is the subset of the Grafana dashboard model validation
// reads.
type dashboardJSON struct {
	Panels []panelJSON `json:"panels"`
}

type panelJSON struct {
	Title   string       `json:"title"`
	Type    string       `json:"type"`
	Panels  []panelJSON  `json:"panels"`
	Targets []targetJSON `json:"targets"`
}

type targetJSON struct {
	Expr  string `json:"expr"`
	RefID string `json:"refId"`
}

// DashboardJSON validates a rendered dashboard.
func DashboardJSON(data []byte, known map[string]bool) Result {
	var res Result

	var dash dashboardJSON
	if err := json.Unmarshal(data, &dash); err != nil {
		res.errorf("decoding dashboard: %v", err)
		return res
	}

	for i := range dash.Panels {
		row := &dash.Panels[i]
		if row.Type != "row" {
			checkPanel(&res, row, known)
			continue
		}
		if len(row.Panels) == 0 {
			res.warnf("row %q has no panels", row.Title)
		}
		for j := range row.Panels {
			checkPanel(&res, &row.Panels[j], known)
		}
	}

	return res
}

func checkPanel(res *Result, p *panelJSON, known map[string]bool) {
	if p.Title == "" {
		res.warnf("panel of type %s has no title", p.Type)
	}
	if len(p.Targets) == 0 {
		res.errorf("panel %q has no targets", p.Title)
	}

	refIDs := make(map[string]bool, len(p.Targets))
	for _, t := range p.Targets {
		if refIDs[t.RefID] {
			res.errorf("panel %q: duplicate refId %s", p.Title, t.RefID)
		}
		refIDs[t.RefID] = true
		checkExpr(res, fmt.Sprintf("panel %q target %s", p.Title, t.RefID), t.Expr, known)
	}
}

// Rules validates rule groups. Rule names must be unique across groups.
func Rules(groups []rules.RuleGroup, known map[string]bool) Result {
	var res Result

	seen := make(map[string]bool)
	for _, g := range groups {
		for _, r := range g.Rules {
			name := r.Name()
			switch {
			case r.Record != "" && r.Alert != "":
				res.errorf("rule %s: record and alert are mutually exclusive", name)
			case name == "":
				res.errorf("group %s: rule without record or alert name", g.Name)
			case seen[name]:
				res.errorf("group %s: duplicate rule %s", g.Name, name)
			}
			seen[name] = true

			if r.Alert != "" && r.Labels["severity"] == "" {
				res.warnf("alert %s has no severity label", r.Alert)
			}
			checkExpr(&res, "rule "+name, r.Expr, known)
		}
	}

	return res
}

func checkExpr(res *Result, where, expr string, known map[string]bool) {
	if expr == "" {
		res.errorf("%s: empty expression", where)
		return
	}
	unknown, err := Expr(expr, known)
	if err != nil {
		res.errorf("%s: %v", where, err)
		return
	}
	for _, name := range unknown {
		res.errorf("%s: unknown metric %s", where, name)
	}
}
