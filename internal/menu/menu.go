// Package menu is the numbered text interface over the registry.
//
// Each operation is built by a factory that receives its dependencies and
// returns an Action closing over them:
//
//	menu.Item{Key: "5", Title: "Assign resident", Action: menu.AssignResident(reg)}
//
// The factory runs once when the menu is built; the Action runs every
// time the operator picks the item.
package menu

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aanand-mishra/apartments-registry/internal/utils/response"
)

// Action performs one menu operation. Outcomes are reported on the
// Console; the returned error is either io.EOF, which ends the session,
// or a failure the menu reports before showing itself again.
type Action func(c *Console) error

// Item is one numbered entry. An Item without an Action leaves the menu.
type Item struct {
	Key    string
	Title  string
	Action Action
}

// Menu is a titled list of items shown until the operator leaves it.
type Menu struct {
	Title string
	Items []Item
}

// Run shows m and dispatches choices until an item without an Action is
// picked or input ends. It returns io.EOF in the latter case so an
// enclosing menu stops as well.
func (m *Menu) Run(c *Console) error {
	for {
		c.Print(m.render())

		choice, err := c.Ask("Choose an option")
		if err != nil {
			return err
		}

		item, ok := m.find(choice)
		if !ok {
			c.Reply(response.Response{Status: response.StatusError, Message: "unknown option, try again"})
			continue
		}
		if item.Action == nil {
			return nil
		}

		slog.Debug("menu action", slog.String("menu", m.Title), slog.String("item", item.Title))
		if err := item.Action(c); err != nil {
			if errors.Is(err, io.EOF) {
				return io.EOF
			}
			c.Reply(response.FromError(err))
		}
	}
}

// AsAction adapts m so it can be nested as an item of another menu.
func (m *Menu) AsAction() Action {
	return func(c *Console) error {
		return m.Run(c)
	}
}

func (m *Menu) render() string {
	s := m.Title + ":\n"
	for _, it := range m.Items {
		s += fmt.Sprintf("%s. %s\n", it.Key, it.Title)
	}
	return s
}

func (m *Menu) find(key string) (Item, bool) {
	for _, it := range m.Items {
		if it.Key == key {
			return it, true
		}
	}
	return Item{}, false
}
