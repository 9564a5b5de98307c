package catalog

import (
	"fmt"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/settings"
)

// SetBottomBarSlot binds an active app to a bottom-bar slot. An empty appID
// clears the slot.
func (c *Catalog) SetBottomBarSlot(slot int, appID string) error {
	return c.apply(OperationSetSlot, func(doc *settings.Document) error {
		if slot < 0 || slot >= settings.BottomBarSlots {
			return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
		}

		if appID == "" {
			doc.BottomBar[slot] = ""
			return nil
		}

		i := appIndex(doc, appID)
		if i < 0 {
			return fmt.Errorf("%w: app %s", ErrNotFound, appID)
		}

		if !doc.Apps[i].Active {
			return fmt.Errorf("%w: %s", ErrAppInactive, doc.Apps[i].Name)
		}

		doc.BottomBar[slot] = appID

		return nil
	})
}

// BottomBar returns the current slot bindings
func (c *Catalog) BottomBar() [settings.BottomBarSlots]string {
	return c.doc.BottomBar
}

func clearSlots(doc *settings.Document, appID string) {
	for slot := range doc.BottomBar {
		if doc.BottomBar[slot] == appID {
			doc.BottomBar[slot] = ""
		}
	}
}
