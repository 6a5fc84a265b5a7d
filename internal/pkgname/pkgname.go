// Package pkgname checks project names against the npm registry naming rules
// for new packages. A name that would only produce a warning for an existing
// package is still rejected here, because the generated project is new.
package pkgname

import (
	"regexp"
	"strings"
)

// MaxLength is the longest name the registry accepts for new packages.
const MaxLength = 214

// ValidationResult is the verdict for one candidate name.
type ValidationResult struct {
	Valid    bool
	Problems []string
}

var (
	blacklist = []string{"node_modules", "favicon.ico"}

	specialChars = regexp.MustCompile(`[~'!()*]`)
	scopedName   = regexp.MustCompile(`^(?:@([^/]+?)[/])?([^/]+?)$`)

	// builtinModules mirrors Node's require('module').builtinModules.
	builtinModules = map[string]bool{
		"assert": true, "assert/strict": true, "async_hooks": true, "buffer": true,
		"child_process": true, "cluster": true, "console": true, "constants": true,
		"crypto": true, "dgram": true, "diagnostics_channel": true, "dns": true,
		"dns/promises": true, "domain": true, "events": true, "fs": true,
		"fs/promises": true, "http": true, "http2": true, "https": true,
		"inspector": true, "module": true, "net": true, "os": true, "path": true,
		"path/posix": true, "path/win32": true, "perf_hooks": true, "process": true,
		"punycode": true, "querystring": true, "readline": true, "repl": true,
		"stream": true, "stream/promises": true, "stream/web": true,
		"string_decoder": true, "sys": true, "timers": true, "timers/promises": true,
		"tls": true, "trace_events": true, "tty": true, "url": true, "util": true,
		"util/types": true, "v8": true, "vm": true, "wasi": true,
		"worker_threads": true, "zlib": true,
	}
)

// Validate reports whether name can be published as a new npm package.
// Problems lists hard errors first, then legacy warnings.
func Validate(name string) ValidationResult {
	var errs, warnings []string

	if len(name) == 0 {
		errs = append(errs, "name length must be greater than zero")
	}
	if strings.HasPrefix(name, ".") {
		errs = append(errs, "name cannot start with a period")
	}
	if strings.HasPrefix(name, "_") {
		errs = append(errs, "name cannot start with an underscore")
	}
	if strings.TrimSpace(name) != name {
		errs = append(errs, "name cannot contain leading or trailing spaces")
	}
	for _, bl := range blacklist {
		if strings.ToLower(name) == bl {
			errs = append(errs, bl+" is a blacklisted name")
		}
	}

	if builtinModules[strings.ToLower(name)] {
		warnings = append(warnings, name+" is a core module name")
	}
	if len(name) > MaxLength {
		warnings = append(warnings, "name can no longer contain more than 214 characters")
	}
	if strings.ToLower(name) != name {
		warnings = append(warnings, "name can no longer contain capital letters")
	}
	if specialChars.MatchString(lastSegment(name)) {
		warnings = append(warnings, `name can no longer contain special characters ("~'!()*")`)
	}

	if !urlFriendly(name) {
		m := scopedName.FindStringSubmatch(name)
		if m == nil || m[1] == "" || !urlFriendly(m[1]) || !urlFriendly(m[2]) {
			errs = append(errs, "name can only contain URL-friendly characters")
		}
	}

	problems := append(errs, warnings...)
	if len(problems) == 0 {
		return ValidationResult{Valid: true}
	}
	return ValidationResult{Valid: false, Problems: problems}
}

func lastSegment(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// urlFriendly reports whether s survives encodeURIComponent unchanged.
func urlFriendly(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.IndexByte("-_.!~*'()", c) >= 0:
		default:
			return false
		}
	}
	return true
}
