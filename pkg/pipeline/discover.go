package pipeline

import (
	"fmt"
	"io/fs"
	"regexp"
	"sort"

	"github.com/TechXTT/sqlpipe/pkg/source"
)

var scriptRe = regexp.MustCompile(`^(?:.*_)?(clean|bootstrap|query_.+)\.sql$`)

// Discover builds the default pipeline from the script names in the top
// level of fsys: *clean.sql actions, then *bootstrap.sql actions, then every
// *query_*.sql as a query. Each group is ordered by file name.
//
// Discovery never produces load steps, and queries always run in file-name
// order. Pipelines that append CSV files after bootstrap, or need queries in
// another order, must list their steps in a config file.
func Discover(fsys fs.FS) ([]Step, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read sql dir: %w", err)
	}

	var cleans, bootstraps, queries []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := scriptRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		switch m[1] {
		case "clean":
			cleans = append(cleans, e.Name())
		case "bootstrap":
			bootstraps = append(bootstraps, e.Name())
		default:
			queries = append(queries, e.Name())
		}
	}
	if len(cleans)+len(bootstraps)+len(queries) == 0 {
		return nil, ErrNoScripts
	}

	sort.Strings(cleans)
	sort.Strings(bootstraps)
	sort.Strings(queries)

	steps := make([]Step, 0, len(cleans)+len(bootstraps)+len(queries))
	for _, name := range cleans {
		steps = append(steps, Action(source.ScriptID(name)))
	}
	for _, name := range bootstraps {
		steps = append(steps, Action(source.ScriptID(name)))
	}
	for _, name := range queries {
		steps = append(steps, Query(source.ScriptID(name)))
	}
	return steps, nil
}
