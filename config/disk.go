package config

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/vc64/core/errors"
)

// WarningBoilerPlate is written as the first line of every preferences
// file, warning a human editor that the file is machine-maintained.
const WarningBoilerPlate = "# this file is generated by vc64/core. manual edits may be overwritten."

// Disk associates named Pref values with a single backing file, written
// and read as a sequence of "key :: value" lines.
type Disk struct {
	path  string
	prefs map[string]Pref
}

// NewDisk returns a Disk backed by path. The file is not required to
// exist yet; it is created on the first Save.
func NewDisk(path string) (*Disk, error) {
	return &Disk{path: path, prefs: make(map[string]Pref)}, nil
}

// Add registers a preference under key. Duplicate keys are rejected.
func (d *Disk) Add(key string, p Pref) error {
	if _, exists := d.prefs[key]; exists {
		return errors.Errorf(errors.ConfigError, fmt.Sprintf("duplicate preference key %q", key))
	}
	d.prefs[key] = p
	return nil
}

// Save writes every registered preference to disk, one "key :: value"
// line per entry, sorted by key so the file's diff is stable across
// runs regardless of registration order.
func (d *Disk) Save() error {
	keys := make([]string, 0, len(d.prefs))
	for k := range d.prefs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f, err := os.Create(d.path)
	if err != nil {
		return errors.Errorf(errors.ConfigError, err.Error())
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, WarningBoilerPlate)
	for _, k := range keys {
		fmt.Fprintf(w, "%s :: %s\n", k, d.prefs[k].String())
	}
	return w.Flush()
}

// Load reads the backing file and calls Set on every registered
// preference whose key appears in it. Keys present in the file but not
// registered are silently ignored (a newer file read by an older
// binary); keys registered but absent from the file are left at
// whatever value they already had.
func (d *Disk) Load() error {
	f, err := os.Open(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Errorf(errors.ConfigError, err.Error())
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, " :: ", 2)
		if len(parts) != 2 {
			continue
		}
		key, value := parts[0], parts[1]
		p, ok := d.prefs[key]
		if !ok {
			continue
		}
		if err := p.Set(value); err != nil {
			return err
		}
	}
	return scanner.Err()
}
