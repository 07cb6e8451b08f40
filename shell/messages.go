package shell

import (
	_ "embed"
	"fmt"

	"github.com/magiconair/properties"
)

//go:embed messages.properties
var messagesFile string

type catalog struct {
	props *properties.Properties
}

func loadCatalog() *catalog {
	props := properties.MustLoadString(messagesFile)
	props.DisableExpansion = true
	return &catalog{props: props}
}

func (c *catalog) text(key string, args ...interface{}) string {
	return fmt.Sprintf(c.props.MustGetString(key), args...)
}
