package mapreport

import "strings"

// copyrightSeparator joins the attribution parts of the copyright strip.
const copyrightSeparator = " | "

// JoinCopyright deduplicates the attribution parts in caller order, drops
// blank parts and joins the rest with " | ". A trailing separator left
// over from upstream joining is stripped exactly if present.
func JoinCopyright(parts []string) string {
	seen := make(map[string]bool, len(parts))
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		kept = append(kept, p)
	}
	s := strings.Join(kept, copyrightSeparator)
	return strings.TrimSuffix(s, copyrightSeparator)
}
