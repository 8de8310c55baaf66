// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package navmenu renders navigation menus from a declarative description.

A menu description is a sequence of entries: bare labels (Text), leaves
with attributes (Item), branches with children (Branch), and splices
(Group). Reduce normalizes any mix of these into a uniform Node tree,
deriving a slug from each title and defaulting branch carets from the
menu's ambient setting.

Orientation decides the layout and how deep branches deploy:

  - Vertical menus render one row per node and nest without bound; a
    deployed branch indents its children directly below itself.
  - Horizontal menus render the top level on one line and open a single
    dropdown panel below the active toggle; rows inside the panel act
    as plain links no matter their shape.

Selection is slug-based and exclusive. One leaf slug may be active and
one branch chain may be deployed; selecting the active slug again clears
it, and toggling a deployed branch closes it. Activations are reported
through SelectedMsg and ToggledMsg, or through the OnSelect and OnToggle
constructors when the owner supplies them.

The menu is driven entirely by its owner's program loop:

	menu := navmenu.New(theme,
		navmenu.Text("Home"),
		navmenu.Branch{Title: "Docs", Children: []navmenu.Entry{
			navmenu.Text("Install"),
			navmenu.Text("Guides"),
		}},
	)
	menu.Start()

Menus loaded from disk use ParseYAML, which accepts the same shapes as
the entry variants.
*/
package navmenu
