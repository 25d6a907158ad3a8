// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseGainList parses a comma-separated list of integers such as
// "112,110,108". Whitespace around entries is ignored.
func ParseGainList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid gain list entry %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
