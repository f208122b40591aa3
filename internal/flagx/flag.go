// Package flagx lets several independent flag sets share one argument list
// by filtering it down to the flags each of them understands.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs keeps the allowed flags of args, with their values, and drops
// everything else. A flag is kept in "-name=value" form or as "-name value";
// in the second form the value is only consumed when it does not start with
// '-', so boolean flags have to use "=". Scanning stops at "--".
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]bool, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = true
	}

	kept := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}

		name, _, inline := strings.Cut(arg, "=")
		if !strings.HasPrefix(name, "-") || !allowed[name] {
			continue
		}
		kept = append(kept, arg)
		if inline {
			continue
		}

		if next := i + 1; next < len(args) && !strings.HasPrefix(args[next], "-") {
			kept = append(kept, args[next])
			i = next
		}
	}

	return kept
}

// JSONConfigPath extracts the config file path given with -c or -config.
// Other arguments are ignored; the last occurrence wins. Returns "" when
// neither flag is present.
func JSONConfigPath(args []string) string {
	var config string

	filtered := FilterArgs(args, []string{"-c", "-config", "--config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(filtered)

	return config
}
