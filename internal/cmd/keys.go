package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/Iron-Ham/peek/internal/keymap"
	"github.com/Iron-Ham/peek/internal/styles"
)

// printKeys writes the bindings of km grouped by category.
func printKeys(w io.Writer, km *keymap.Keymap) {
	s := styles.ForWriter(w)
	grouped := km.BindingsByCategory()

	for i, category := range km.Categories() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, s.Title.Render(category))

		// Bindings sharing a command are listed on one line.
		var order []keymap.Command
		keys := make(map[keymap.Command][]string)
		descriptions := make(map[keymap.Command]string)
		for _, binding := range grouped[category] {
			if _, seen := keys[binding.Command]; !seen {
				order = append(order, binding.Command)
				descriptions[binding.Command] = binding.Description
			}
			keys[binding.Command] = append(keys[binding.Command], binding.String())
		}

		for _, cmd := range order {
			fmt.Fprintf(w, "  %-18s %s\n",
				descriptions[cmd],
				s.Key.Render(strings.Join(keys[cmd], ", ")))
		}
	}
}
