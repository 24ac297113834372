package cmdline

import "strings"

// splitArgs normalizes a raw argument list before any state-machine logic
// runs. Two rewrites, in order:
//
//  1. every token is split on '=' ("--resolution=2048" -> "--resolution",
//     "2048")
//  2. a remaining token that starts with a single '-' (not "--") and is
//     longer than two characters is split after its second character
//     ("-n1024" -> "-n", "1024")
//
// The pass is deterministic and lossless: no characters are dropped, only
// boundaries are introduced.
func splitArgs(args []string) []string {
	var out []string
	for _, arg := range args {
		for _, part := range strings.Split(arg, "=") {
			if strings.HasPrefix(part, "-") && !strings.HasPrefix(part, "--") && len(part) > 2 {
				out = append(out, part[:2], part[2:])
			} else {
				out = append(out, part)
			}
		}
	}
	return out
}
