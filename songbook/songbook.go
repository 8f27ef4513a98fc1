// Package songbook ships a small catalog of built-in ringtones and
// loads user catalogs from YAML files.
package songbook

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	rtttl "github.com/mfinkle/rtttl-go"
)

// ErrNotFound is returned when a song name is not in the catalog.
var ErrNotFound = errors.New("songbook: song not found")

// Entry pairs a song name with its RTTTL source text.
type Entry struct {
	Name  string `yaml:"name"`
	RTTTL string `yaml:"rtttl"`
}

// Song parses the entry into a playable Song.
func (e Entry) Song(opts ...rtttl.SongOption) (*rtttl.Song, error) {
	return rtttl.NewSong(e.RTTTL, opts...)
}

var builtin = []Entry{
	{Name: "scale", RTTTL: "scale:d=8,o=5,b=160:c,d,e,f,g,a,b,c6"},
	{Name: "twinkle", RTTTL: "twinkle:d=4,o=5,b=80:c,c,g,g,a,a,2g,f,f,e,e,d,d,2c"},
	{Name: "frerejacques", RTTTL: "frerejacques:d=4,o=5,b=104:c,d,e,c,c,d,e,c,e,f,2g,e,f,2g,8g,8a,8g,8f,e,c,8g,8a,8g,8f,e,c,c,g4,2c,c,g4,2c"},
	{Name: "odetojoy", RTTTL: "odetojoy:d=4,o=5,b=100:e,e,f,g,g,f,e,d,c,c,d,e,4e,8d,2d"},
	{Name: "mary", RTTTL: "mary:d=4,o=5,b=120:e,d,c,d,e,e,2e,d,d,2d,e,g,2g,e,d,c,d,e,e,e,e,d,d,e,d,2c"},
	{Name: "startup", RTTTL: "startup:d=16,o=6,b=140:c,e,g,8c7"},
	{Name: "alarm", RTTTL: "alarm:d=8,o=6,b=180:c,p,c,p,c,p,4p,c,p,c,p,c,p"},
}

// All returns the built-in catalog.
func All() []Entry {
	out := make([]Entry, len(builtin))
	copy(out, builtin)
	return out
}

// Names returns the built-in song names in catalog order.
func Names() []string {
	names := make([]string, len(builtin))
	for i, e := range builtin {
		names[i] = e.Name
	}
	return names
}

// Find looks up a built-in song by name, case-insensitively.
func Find(name string) (Entry, error) {
	for _, e := range builtin {
		if strings.EqualFold(e.Name, name) {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%q: %w", name, ErrNotFound)
}

type catalogFile struct {
	Songs []Entry `yaml:"songs"`
}

// LoadFile reads a YAML catalog of the form:
//
//	songs:
//	  - name: doorbell
//	    rtttl: "doorbell:d=8,o=5,b=100:e,c"
//
// Every entry must carry a name and an RTTTL string that parses.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i, e := range f.Songs {
		if e.Name == "" || e.RTTTL == "" {
			return nil, fmt.Errorf("%s: songs[%d] needs both name and rtttl", path, i)
		}
		if _, err := e.Song(); err != nil {
			return nil, fmt.Errorf("%s: song %q: %w", path, e.Name, err)
		}
	}
	return f.Songs, nil
}
