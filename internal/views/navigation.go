package views

import (
	"net/url"
	"strconv"
	"strings"
)

// ActivePostID parses an address-bar fragment of the form "#post-<id>"
// into the selected conversation's post id. Anything else means no
// active conversation.
func ActivePostID(fragment string) (int, bool) {
	fragment = strings.TrimSpace(fragment)
	if !strings.HasPrefix(fragment, "#post-") {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(fragment, "#post-"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// DetailPostID parses the detail page's "?id=<id>" query parameter.
func DetailPostID(rawQuery string) (int, bool) {
	values, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return 0, false
	}
	id, err := strconv.Atoi(values.Get("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}
