package dmi

import "strings"

const (
	endMarker   = "# END DMI"
	statePrefix = `state = "`
	stateSuffix = `"`

	// asciiSpace is the set trimmed from manifest lines. Latin-1 NBSP and
	// NEL are deliberately absent.
	asciiSpace = " \t\n\f\r"
)

// ParseManifest returns the state names declared in one manifest text, in
// the order they appear. Lines from the first one containing "# END DMI"
// onwards are not examined. Names are taken verbatim, without unescaping,
// and duplicates are kept.
func ParseManifest(text string) []string {
	var states []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Trim(line, asciiSpace)
		if strings.Contains(line, endMarker) {
			break
		}
		if name, ok := stateName(line); ok {
			states = append(states, name)
		}
	}
	return states
}

// stateName extracts the quoted name from a trimmed `state = "<name>"` line.
func stateName(line string) (string, bool) {
	if len(line) < len(statePrefix)+len(stateSuffix) {
		return "", false
	}
	if !strings.HasPrefix(line, statePrefix) || !strings.HasSuffix(line, stateSuffix) {
		return "", false
	}
	return line[len(statePrefix) : len(line)-len(stateSuffix)], true
}
