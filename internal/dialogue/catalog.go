package dialogue

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/message"
)

//go:embed menus.yaml
var menusYAML []byte

// Catalog holds the interactive menus and the reply for every selectable row.
type Catalog struct {
	Services   message.InteractiveList `yaml:"services"`
	Medical    message.InteractiveList `yaml:"medical"`
	Selections map[string]string       `yaml:"selections"`
}

var defaultCatalog = MustLoadCatalog(menusYAML)

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() *Catalog { return defaultCatalog }

// LoadCatalog parses a catalog and checks every menu row has a reply.
func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse menu catalog: %w", err)
	}
	for _, list := range []message.InteractiveList{c.Services, c.Medical} {
		if len(list.Sections) == 0 {
			return nil, fmt.Errorf("menu %q has no sections", list.Header)
		}
		for _, s := range list.Sections {
			for _, row := range s.Rows {
				if _, ok := c.Selections[row.ID]; !ok {
					return nil, fmt.Errorf("menu row %q has no reply", row.ID)
				}
			}
		}
	}
	return &c, nil
}

func MustLoadCatalog(data []byte) *Catalog {
	c, err := LoadCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Selection returns the canned reply for an option id.
func (c *Catalog) Selection(id string) (string, bool) {
	reply, ok := c.Selections[id]
	return reply, ok
}
