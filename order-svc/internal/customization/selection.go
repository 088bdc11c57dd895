// Package customization tracks which options a customer picked for one
// configured product.
package customization

import (
	"fmt"
	"sort"

	"qrmenu/order-svc/internal/domain"
)

type Selection struct {
	groups []domain.CustomizationGroup
	byID   map[int]int
	chosen map[int][]int
}

// NewSelection starts from the options flagged as default. A single-mode group
// keeps only its first default.
func NewSelection(groups []domain.CustomizationGroup) *Selection {
	sorted := make([]domain.CustomizationGroup, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DisplayOrder < sorted[j].DisplayOrder })

	s := &Selection{
		groups: sorted,
		byID:   make(map[int]int, len(sorted)),
		chosen: make(map[int][]int, len(sorted)),
	}
	for i := range s.groups {
		g := &s.groups[i]
		g.Options = append([]domain.CustomizationOption(nil), g.Options...)
		sort.SliceStable(g.Options, func(a, b int) bool { return g.Options[a].DisplayOrder < g.Options[b].DisplayOrder })
		s.byID[g.ID] = i

		for _, opt := range g.Options {
			if !opt.IsDefault {
				continue
			}
			s.chosen[g.ID] = append(s.chosen[g.ID], opt.ID)
			if g.Mode == domain.SelectionSingle {
				break
			}
		}
	}
	return s
}

func (s *Selection) group(groupID int) (*domain.CustomizationGroup, error) {
	idx, ok := s.byID[groupID]
	if !ok {
		return nil, domain.NotFound(fmt.Sprintf("customization group %d", groupID))
	}
	return &s.groups[idx], nil
}

func hasOption(g *domain.CustomizationGroup, optionID int) bool {
	for _, opt := range g.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}

// Select replaces whatever the single-mode group held with optionID.
func (s *Selection) Select(groupID, optionID int) error {
	g, err := s.group(groupID)
	if err != nil {
		return err
	}
	if g.Mode != domain.SelectionSingle {
		return domain.InvalidInput("group %q allows multiple options, use toggle", g.Name)
	}
	if !hasOption(g, optionID) {
		return domain.NotFound(fmt.Sprintf("option %d in group %q", optionID, g.Name))
	}
	s.chosen[groupID] = []int{optionID}
	return nil
}

func (s *Selection) Toggle(groupID, optionID int, included bool) error {
	g, err := s.group(groupID)
	if err != nil {
		return err
	}
	if g.Mode != domain.SelectionMultiple {
		return domain.InvalidInput("group %q allows a single option, use select", g.Name)
	}
	if !hasOption(g, optionID) {
		return domain.NotFound(fmt.Sprintf("option %d in group %q", optionID, g.Name))
	}

	current := s.chosen[groupID]
	idx := -1
	for i, id := range current {
		if id == optionID {
			idx = i
			break
		}
	}
	switch {
	case included && idx < 0:
		s.chosen[groupID] = append(current, optionID)
	case !included && idx >= 0:
		s.chosen[groupID] = append(current[:idx:idx], current[idx+1:]...)
	}
	return nil
}

func (s *Selection) Clear(groupID int) error {
	if _, err := s.group(groupID); err != nil {
		return err
	}
	delete(s.chosen, groupID)
	return nil
}

func (s *Selection) IsComplete() bool {
	return len(s.Missing()) == 0
}

// Missing lists the names of required groups with nothing selected.
func (s *Selection) Missing() []string {
	var missing []string
	for _, g := range s.groups {
		if g.IsRequired && len(s.chosen[g.ID]) == 0 {
			missing = append(missing, g.Name)
		}
	}
	return missing
}

// Chosen returns a copy of the selected option ids per non-empty group.
func (s *Selection) Chosen() map[int][]int {
	out := make(map[int][]int, len(s.chosen))
	for groupID, ids := range s.chosen {
		if len(ids) == 0 {
			continue
		}
		out[groupID] = append([]int(nil), ids...)
	}
	return out
}

// Options returns the chosen options in group order, then option order.
func (s *Selection) Options() []domain.SelectedOption {
	var out []domain.SelectedOption
	for _, g := range s.groups {
		picked := make(map[int]struct{}, len(s.chosen[g.ID]))
		for _, id := range s.chosen[g.ID] {
			picked[id] = struct{}{}
		}
		for _, opt := range g.Options {
			if _, ok := picked[opt.ID]; !ok {
				continue
			}
			out = append(out, domain.SelectedOption{
				GroupID:         g.ID,
				GroupName:       g.Name,
				OptionID:        opt.ID,
				Label:           opt.Label,
				PriceAdjustment: opt.PriceAdjustment,
			})
		}
	}
	return out
}
