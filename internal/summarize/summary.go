package summarize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Summary is the structured digest of one paper. The field set is
// fixed by the prompt; the value shapes are lenient because chat
// models drift between strings, lists, and objects.
type Summary struct {
	Phenomenon string      `json:"phenomenon"`
	Problem    StringList  `json:"problem"`
	Mechanism  StringList  `json:"mechanism"`
	Result     ResultBlock `json:"result"`
}

// StringList decodes either a JSON string or an array of values into
// a flat list of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*l = nil
		} else {
			*l = StringList{s}
		}
		return nil
	}

	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make(StringList, 0, len(items))
	for _, item := range items {
		out = append(out, stringify(item))
	}
	*l = out
	return nil
}

// ResultBlock decodes the experiment-result field, which models emit
// as an object with datasets/performance, a bare list, or a string.
type ResultBlock struct {
	Datasets    StringList `json:"datasets,omitempty"`
	Performance StringList `json:"performance,omitempty"`
	Lines       StringList `json:"-"` // flattened fallback for non-object shapes
}

func (r *ResultBlock) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var obj struct {
			Datasets    StringList      `json:"datasets"`
			Performance json.RawMessage `json:"performance"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		r.Datasets = obj.Datasets
		r.Performance = decodePerformance(obj.Performance)
		return nil
	}

	var list StringList
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	r.Lines = list
	return nil
}

// decodePerformance accepts a list of entries or a metric->value map;
// map entries are rendered as "metric: value" in sorted key order so
// output is deterministic.
func decodePerformance(raw json.RawMessage) StringList {
	if len(raw) == 0 {
		return nil
	}

	var list StringList
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(StringList, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s: %s", k, stringify(m[k])))
	}
	return out
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return fmt.Sprintf("%g", s)
	case nil:
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
