package dataset

import (
	"fmt"
	"regexp"
	"strconv"
)

var clipIDPattern = regexp.MustCompile(`^S(\d{3})C(\d{3})P(\d{3})R(\d{3})A(\d{3})`)

// ClipID holds the recording coordinates encoded in an NTU clip name.
type ClipID struct {
	Setup       int `json:"setup" yaml:"setup"`
	Camera      int `json:"camera" yaml:"camera"`
	Performer   int `json:"performer" yaml:"performer"`
	Replication int `json:"replication" yaml:"replication"`
	Action      int `json:"action" yaml:"action"`
}

// ParseClipID decodes a clip name or path such as S001C002P003R002A022_rgb.avi.
func ParseClipID(name string) (ClipID, error) {
	m := clipIDPattern.FindStringSubmatch(Stem(name))
	if m == nil {
		return ClipID{}, fmt.Errorf("clip name %q does not match S###C###P###R###A###", name)
	}
	values := make([]int, 5)
	for i := range values {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return ClipID{}, fmt.Errorf("clip name %q: %w", name, err)
		}
		values[i] = n
	}
	return ClipID{
		Setup:       values[0],
		Camera:      values[1],
		Performer:   values[2],
		Replication: values[3],
		Action:      values[4],
	}, nil
}

// String renders the canonical clip name.
func (id ClipID) String() string {
	return fmt.Sprintf("S%03dC%03dP%03dR%03d%s", id.Setup, id.Camera, id.Performer, id.Replication, ActionLabel(id.Action))
}

// ActionLabel formats an action class number as used in directory and
// ledger file names.
func ActionLabel(n int) string {
	return fmt.Sprintf("A%03d", n)
}
