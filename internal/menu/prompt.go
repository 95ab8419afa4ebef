package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	runewidth "github.com/mattn/go-runewidth"
)

func (m *Menu) promptSelection(options []Option) (int, error) {
	items, indexes := formatMenuItems(options)

	prompt := promptui.Select{
		Label:    "Please select an operation",
		Items:    items,
		Size:     10,
		HideHelp: false,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}:",
			Active:   "▶ {{ . | cyan }}",
			Inactive: "  {{ . }}",
			Selected: "✅ {{ . | green }}",
			Help:     "{{ \"Navigate:\" | faint }} {{ .NextKey }} {{ .PrevKey }} {{ \"|\" | faint }} {{ \"Exit:\" | faint }} Ctrl + C",
		},
	}

	index, _, err := prompt.Run()
	if err != nil {
		return -1, err
	}

	if index >= 0 && index < len(indexes) {
		return indexes[index], nil
	}

	return -1, errors.New("invalid selection")
}

// confirmFirstRun mirrors the question the consuming application asks when it
// finds no settings file.
func (m *Menu) confirmFirstRun() (bool, error) {
	prompt := promptui.Prompt{
		Label:     "It appears the environment is not yet configured, create the default configuration (recommended: yes)",
		IsConfirm: true,
		Default:   "y",
	}

	result, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(result))
	return answer == "" || answer == "y" || answer == "yes", nil
}

// formatMenuItems pads enabled menu labels into aligned columns.
func formatMenuItems(options []Option) ([]string, []int) {
	maxLabelWidth := 0
	for _, option := range options {
		if !option.Enabled {
			continue
		}
		if width := runewidth.StringWidth(option.Label); width > maxLabelWidth {
			maxLabelWidth = width
		}
	}

	var items []string
	var indexes []int

	for idx, option := range options {
		if !option.Enabled {
			continue
		}

		label := option.Label
		if option.Description != "" {
			padding := strings.Repeat(" ", maxLabelWidth-runewidth.StringWidth(label))
			label = fmt.Sprintf("%s%s  %s", label, padding, option.Description)
		}

		items = append(items, label)
		indexes = append(indexes, idx)
	}

	return items, indexes
}
