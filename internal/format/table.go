package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
)

const cellRuneLimit = 60

// WriteTable renders v as aligned text for terminal reading.
//
// Lists of objects become one row per element under a header row. A single
// object becomes a key/value listing. Anything else prints as one line.
// Structs are first marshalled through JSON so column names follow the same
// json tags the API uses.
func WriteTable(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	switch t := x.(type) {
	case []any:
		writeRows(tw, t)
	case map[string]any:
		writeKeyValues(tw, t)
	default:
		fmt.Fprintln(tw, cell(x))
	}
	return tw.Flush()
}

// columnRank pins identifying columns to the left edge; everything else
// sorts alphabetically after them.
var columnRank = map[string]int{
	"id":           0,
	"key":          1,
	"name":         2,
	"value":        3,
	"status":       4,
	"project_name": 5,
	"order":        6,
	"created_at":   90,
	"updated_at":   91,
}

func writeRows(w io.Writer, items []any) {
	if len(items) == 0 {
		return
	}

	seen := map[string]bool{}
	var cols []string
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			// Mixed or scalar lists degrade to one cell per line.
			for _, it := range items {
				fmt.Fprintln(w, cell(it))
			}
			return
		}
		for k := range m {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.SliceStable(cols, func(i, j int) bool {
		ri, rj := rank(cols[i]), rank(cols[j])
		if ri != rj {
			return ri < rj
		}
		return cols[i] < cols[j]
	})

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = strings.ToUpper(c)
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, it := range items {
		m := it.(map[string]any)
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = cell(m[c])
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
}

func writeKeyValues(w io.Writer, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ri, rj := rank(keys[i]), rank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%s\n", k, cell(m[k]))
	}
}

func rank(col string) int {
	if r, ok := columnRank[col]; ok {
		return r
	}
	return 50
}

// cell flattens a value into one table cell. Long or multi-line text is
// collapsed so rows stay on one line.
func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		s := strings.Join(strings.Fields(t), " ")
		runes := []rune(s)
		if len(runes) > cellRuneLimit {
			return string(runes[:cellRuneLimit]) + "..."
		}
		return s
	case bool:
		return strconv.FormatBool(t)
	case float64:
		// JSON numbers become float64 in interface{}.
		if float64(int64(t)) == t {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}
