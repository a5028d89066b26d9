package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pokefinder/internal/domain"
	"pokefinder/internal/pokeapi"
	"pokefinder/internal/ui/views"
)

type rowKind int

const (
	rowFilter rowKind = iota
	rowSort
	rowFields
)

// panelRow is one editable line of the settings panel
type panelRow struct {
	kind rowKind
	key  domain.FilterKey
}

func (r panelRow) label() string {
	switch r.kind {
	case rowSort:
		return "Sort"
	case rowFields:
		return "Fields"
	}
	return r.key.Label()
}

// panelRows lists the filters in canonical order followed by sort and fields
var panelRows = func() []panelRow {
	rows := make([]panelRow, 0, len(domain.FilterKeys)+2)
	for _, k := range domain.FilterKeys {
		rows = append(rows, panelRow{kind: rowFilter, key: k})
	}
	return append(rows, panelRow{kind: rowSort}, panelRow{kind: rowFields})
}()

const listSeparators = ", "

// splitList splits user input on commas and whitespace
func splitList(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(listSeparators, r) || r == '\t'
	})
}

// describeRow renders the panel line for row against search
func describeRow(row panelRow, search domain.Search, opts *pokeapi.Options) views.PanelRow {
	out := views.PanelRow{Label: row.label()}
	switch row.kind {
	case rowSort:
		parts := make([]string, 0, len(search.Sort))
		for _, s := range search.Sort {
			arrow := "↑"
			if s.Reverse {
				arrow = "↓"
			}
			parts = append(parts, sortHeader(s.ID)+" "+arrow)
		}
		out.Value = strings.Join(parts, ", ")
		return out
	case rowFields:
		out.Value = strings.Join(pokeapi.Headers(search.Fields), ", ")
		return out
	}

	out.Toggleable = true
	v := search.Filter.MustGet(row.key)
	out.Active = v.IsActive()
	switch v := v.(type) {
	case domain.StringValue:
		if v.Value != nil {
			out.Value = opts.Label(row.key, *v.Value)
		}
	case domain.StringMatchValue:
		out.Mode = v.Mode.Label()
		out.Value = v.TextString()
	case domain.NumberMatchValue:
		out.Mode = v.Mode.Label()
		if v.Number != nil {
			out.Value = strconv.FormatFloat(*v.Number, 'f', -1, 64) + " kg"
		}
	case domain.ArrayMatchValue:
		out.Mode = v.Mode.Label()
		labels := make([]string, len(v.Items))
		for i, id := range v.Items {
			labels[i] = opts.Label(row.key, id)
		}
		out.Value = strings.Join(labels, ", ")
	}
	return out
}

func sortHeader(id string) string {
	for _, c := range domain.SortOptions {
		if c.ID == id {
			return c.Header
		}
	}
	return id
}

// editText is the text offered when editing row
func editText(row panelRow, search domain.Search, opts *pokeapi.Options) string {
	switch row.kind {
	case rowSort:
		tokens := make([]string, len(search.Sort))
		for i, s := range search.Sort {
			tokens[i] = s.ID
			if s.Reverse {
				tokens[i] = "-" + s.ID
			}
		}
		return strings.Join(tokens, " ")
	case rowFields:
		return strings.Join(search.Fields, " ")
	}

	switch v := search.Filter.MustGet(row.key).(type) {
	case domain.StringValue:
		if v.Value != nil {
			return opts.Label(row.key, *v.Value)
		}
	case domain.StringMatchValue:
		return v.TextString()
	case domain.NumberMatchValue:
		if v.Number != nil {
			return strconv.FormatFloat(*v.Number, 'f', -1, 64)
		}
	case domain.ArrayMatchValue:
		labels := make([]string, len(v.Items))
		for i, id := range v.Items {
			labels[i] = opts.Label(row.key, id)
		}
		return strings.Join(labels, ", ")
	}
	return ""
}

// applyEdit parses text typed for row and returns search with the change
// applied. Filters with a non-empty value become active.
func applyEdit(row panelRow, search domain.Search, text string, opts *pokeapi.Options) (domain.Search, error) {
	text = strings.TrimSpace(text)
	switch row.kind {
	case rowSort:
		sort, err := parseSort(text)
		if err != nil {
			return search, err
		}
		return search.WithSort(sort), nil
	case rowFields:
		fields, err := parseFields(text)
		if err != nil {
			return search, err
		}
		return search.WithFields(fields), nil
	}

	current := search.Filter.MustGet(row.key)
	active := current.IsActive() || text != ""

	var next domain.Value
	switch v := current.(type) {
	case domain.StringValue:
		id := ""
		if text != "" {
			var err error
			if id, err = resolveOption(opts, row.key, text); err != nil {
				return search, err
			}
		}
		next = domain.NewString(active, id)
	case domain.StringMatchValue:
		next = domain.NewStringMatch(active, text, v.Mode)
	case domain.NumberMatchValue:
		var number *float64
		if text != "" {
			n, ok := domain.ParseNumber(strings.TrimSpace(strings.TrimSuffix(text, "kg")))
			if !ok {
				return search, fmt.Errorf("%s must be a number", strings.ToLower(row.label()))
			}
			number = &n
		}
		next = domain.NewNumberMatch(active, number, v.Mode)
	case domain.ArrayMatchValue:
		var items []string
		for _, token := range splitList(text) {
			id, err := resolveOption(opts, row.key, token)
			if err != nil {
				return search, err
			}
			items = append(items, id)
		}
		next = domain.NewArrayMatch(active, items, v.Mode)
	default:
		return search, fmt.Errorf("cannot edit %s", row.label())
	}

	filter, err := search.Filter.With(row.key, next)
	if err != nil {
		return search, err
	}
	return search.WithFilter(filter), nil
}

// resolveOption maps text to an option id. Without loaded options the text
// is taken as the id, as long as it is a single list token.
func resolveOption(opts *pokeapi.Options, key domain.FilterKey, text string) (string, error) {
	if len(opts.For(key)) == 0 {
		if !domain.ValidListToken(text) {
			return "", fmt.Errorf("%s %q cannot contain %q", strings.ToLower(key.Label()), text, "_")
		}
		return strings.ToLower(text), nil
	}
	id, ok := opts.Resolve(key, text)
	if !ok {
		return "", fmt.Errorf("unknown %s %q", strings.ToLower(key.Label()), text)
	}
	return id, nil
}

func parseSort(text string) ([]domain.SortField, error) {
	var out []domain.SortField
	seen := make(map[string]bool)
	for _, token := range splitList(text) {
		field := domain.SortField{ID: strings.TrimPrefix(token, "-"), Reverse: strings.HasPrefix(token, "-")}
		if !domain.KnownSortField(field.ID) {
			return nil, fmt.Errorf("unknown sort field %q", field.ID)
		}
		if seen[field.ID] {
			continue
		}
		seen[field.ID] = true
		out = append(out, field)
	}
	if len(out) == 0 {
		return nil, errors.New("sort needs at least one field")
	}
	return out, nil
}

func parseFields(text string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, id := range splitList(text) {
		if !domain.KnownColumn(id) {
			return nil, fmt.Errorf("unknown field %q", id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil, errors.New("select at least one field")
	}
	return out, nil
}

// suggestions completes the last token of text for row. Species names come
// from the API and are handled separately.
func suggestions(row panelRow, text string, opts *pokeapi.Options) []string {
	var candidates []string
	list := true
	switch row.kind {
	case rowSort:
		for _, c := range domain.SortOptions {
			candidates = append(candidates, c.ID, "-"+c.ID)
		}
	case rowFields:
		for _, c := range domain.Columns {
			candidates = append(candidates, c.ID)
		}
	default:
		kind, _ := row.key.Kind()
		if kind != domain.KindString && kind != domain.KindArrayMatch {
			return nil
		}
		list = kind == domain.KindArrayMatch
		for _, o := range opts.For(row.key) {
			candidates = append(candidates, o.Label)
		}
	}

	prefix := ""
	if list {
		if i := strings.LastIndexAny(text, listSeparators); i >= 0 {
			prefix = text[:i+1]
		}
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = prefix + c
	}
	return out
}
