package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceURL(t *testing.T) {
	assert.Equal(t, "file://migrations", sourceURL("migrations"))
	assert.Equal(t, "file:///srv/app/migrations", sourceURL("/srv/app/migrations"))
	assert.Equal(t, "file://custom", sourceURL("file://custom"))
}
