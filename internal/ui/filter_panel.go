package ui

import (
	"fmt"
	"strings"

	"vista/internal/board"
	"vista/internal/filter"
	"vista/internal/record"
)

// panelItem is one selectable line of the filter panel. For select facets
// option -1 is the "All" entry.
type panelItem struct {
	facet  int
	option int
}

type filterPanel struct {
	schema filter.Schema
	items  []panelItem
	cursor int
}

func newFilterPanel(schema filter.Schema) filterPanel {
	var items []panelItem
	for i, spec := range schema {
		if spec.Kind == filter.Select {
			items = append(items, panelItem{facet: i, option: -1})
		}
		for j := range spec.Options {
			items = append(items, panelItem{facet: i, option: j})
		}
	}
	return filterPanel{schema: schema, items: items}
}

func (p *filterPanel) empty() bool { return len(p.items) == 0 }

func (p *filterPanel) moveDown() {
	if p.cursor < len(p.items)-1 {
		p.cursor++
	}
}

func (p *filterPanel) moveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// facetKey returns the key of the facet under the cursor.
func (p *filterPanel) facetKey() string {
	if p.empty() {
		return ""
	}
	return p.schema[p.items[p.cursor].facet].Key
}

// intent converts a toggle on the item under the cursor into an intent
// against the current filters.
func (p *filterPanel) intent(current filter.State) (board.Intent, bool) {
	if p.empty() {
		return board.Intent{}, false
	}
	it := p.items[p.cursor]
	spec := p.schema[it.facet]
	if it.option < 0 {
		return board.SelectFilter(spec.Key, record.Value{}), true
	}
	v := spec.Options[it.option].Value
	if spec.Kind == filter.Checkbox {
		return board.ToggleFilter(spec.Key, v, !current.Checked(spec.Key, v)), true
	}
	return board.SelectFilter(spec.Key, v), true
}

func (p *filterPanel) View(current filter.State, focused bool, width int) string {
	if p.empty() {
		return HelpDescStyle.Render("No filters available")
	}

	title := LabelStyle.Render("Filters")
	if n := current.ActiveCount(); n > 0 {
		title += " " + BadgeStyle.Render(fmt.Sprintf("%d active", n))
	}
	lines := []string{title}

	lastFacet := -1
	for i, it := range p.items {
		spec := p.schema[it.facet]
		if it.facet != lastFacet {
			lines = append(lines, "", HelpDescStyle.Render(spec.Label))
			lastFacet = it.facet
		}

		var mark, label, dot string
		switch {
		case it.option < 0:
			_, set := current.Selected(spec.Key)
			mark = radio(!set)
			label = "All " + spec.Label
		case spec.Kind == filter.Checkbox:
			opt := spec.Options[it.option]
			mark = checkbox(current.Checked(spec.Key, opt.Value))
			label = opt.Label
			dot = statusStyle(opt.Value.String()).Render("●") + " "
		default:
			opt := spec.Options[it.option]
			v, set := current.Selected(spec.Key)
			mark = radio(set && v.Equal(opt.Value))
			label = opt.Label
		}

		line := mark + " " + dot + label
		if focused && i == p.cursor {
			line = SelectedRowStyle.Render(mark + " " + label)
		}
		lines = append(lines, line)
	}

	style := PanelStyle
	if focused {
		style = ActivePanelStyle
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// renderSummaries draws the active filter tags shown above the table.
func renderSummaries(summaries []filter.Summary) string {
	if len(summaries) == 0 {
		return ""
	}
	tags := make([]string, 0, len(summaries))
	for _, s := range summaries {
		tags = append(tags, TagStyle.Render(s.String()+" ×"))
	}
	return strings.Join(tags, " ")
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func radio(on bool) string {
	if on {
		return "(•)"
	}
	return "( )"
}
