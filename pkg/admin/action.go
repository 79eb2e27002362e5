package admin

import (
	"strconv"
	"strings"
)

// ActionKind tags one parsed admin callback.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionNoop
	ActionBack          // admin_back
	ActionMenuEdit      // admin_edit
	ActionMenuAdd       // admin_add
	ActionMenuDelete    // admin_delete
	ActionMenuList      // admin_list
	ActionMenuPassword  // admin_password
	ActionMenuExit      // admin_exit
	ActionBrowse        // browse_<id>
	ActionEditSection   // edit_<id>
	ActionEditText      // edit_text
	ActionEditMedia     // edit_media
	ActionEditButtons   // edit_buttons
	ActionEditBack      // edit_back
	ActionButtonAdd     // btn_add
	ActionButtonDelete  // btn_delete
	ActionButtonEdit    // btn_edit
	ActionDeleteButton  // delbtn_<index>
	ActionEditButton    // editbtn_<index>
	ActionDeleteSection // delete_<id>
)

// Action is an admin callback parsed once at the controller boundary.
// SectionID and Index are set only for the kinds that carry them.
type Action struct {
	Kind      ActionKind
	SectionID string
	Index     int
}

// ParseAction maps a raw callback payload to a tagged action. Exact
// identifiers are matched before prefixed ones, so field selectors such as
// edit_text never parse as an edit of a section named "text".
func ParseAction(data string) Action {
	switch data {
	case "noop":
		return Action{Kind: ActionNoop}
	case "admin_back":
		return Action{Kind: ActionBack}
	case "admin_edit":
		return Action{Kind: ActionMenuEdit}
	case "admin_add":
		return Action{Kind: ActionMenuAdd}
	case "admin_delete":
		return Action{Kind: ActionMenuDelete}
	case "admin_list":
		return Action{Kind: ActionMenuList}
	case "admin_password":
		return Action{Kind: ActionMenuPassword}
	case "admin_exit":
		return Action{Kind: ActionMenuExit}
	case "edit_text":
		return Action{Kind: ActionEditText}
	case "edit_media":
		return Action{Kind: ActionEditMedia}
	case "edit_buttons":
		return Action{Kind: ActionEditButtons}
	case "edit_back":
		return Action{Kind: ActionEditBack}
	case "btn_add":
		return Action{Kind: ActionButtonAdd}
	case "btn_delete":
		return Action{Kind: ActionButtonDelete}
	case "btn_edit":
		return Action{Kind: ActionButtonEdit}
	}

	if id, ok := strings.CutPrefix(data, "browse_"); ok && id != "" {
		return Action{Kind: ActionBrowse, SectionID: id}
	}
	if raw, ok := strings.CutPrefix(data, "delbtn_"); ok {
		if index, err := strconv.Atoi(raw); err == nil {
			return Action{Kind: ActionDeleteButton, Index: index}
		}
		return Action{Kind: ActionUnknown}
	}
	if raw, ok := strings.CutPrefix(data, "editbtn_"); ok {
		if index, err := strconv.Atoi(raw); err == nil {
			return Action{Kind: ActionEditButton, Index: index}
		}
		return Action{Kind: ActionUnknown}
	}
	if id, ok := strings.CutPrefix(data, "delete_"); ok && id != "" {
		return Action{Kind: ActionDeleteSection, SectionID: id}
	}
	if id, ok := strings.CutPrefix(data, "edit_"); ok && id != "" {
		return Action{Kind: ActionEditSection, SectionID: id}
	}

	return Action{Kind: ActionUnknown}
}

// Callback data builders, the inverse of ParseAction for the views.

func browseCallback(id string) string  { return "browse_" + id }
func editCallback(id string) string    { return "edit_" + id }
func deleteCallback(id string) string  { return "delete_" + id }
func delButtonCallback(i int) string   { return "delbtn_" + strconv.Itoa(i) }
func editButtonCallback(i int) string  { return "editbtn_" + strconv.Itoa(i) }
