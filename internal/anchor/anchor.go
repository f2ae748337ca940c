// Package anchor derives heading anchor ids.
//
// The renderer and the post viewer share this rule so that an id assigned
// at build time is the same id the viewer would derive from the heading text.
package anchor

import (
	"strconv"
	"strings"
)

// FallbackPrefix is used for headings whose text derives to an empty id.
const FallbackPrefix = "heading-"

// Slugify lower-cases text and collapses every run of characters outside
// [a-z0-9] into a single '-'. Leading and trailing separators are removed.
//
// Examples:
//   - "Boot Stages!!" -> "boot-stages"
//   - "  GRUB 2.x / UEFI  " -> "grub-2-x-uefi"
//   - "???" -> ""
func Slugify(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))

	var b strings.Builder
	b.Grow(len(text))
	pendingSep := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteByte(c)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// ForHeading returns Slugify(text), or "heading-<position>" when that is
// empty. position is the 1-based index of the heading in its document.
func ForHeading(text string, position int) string {
	if id := Slugify(text); id != "" {
		return id
	}
	return FallbackPrefix + strconv.Itoa(position)
}
