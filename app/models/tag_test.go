package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagValidate(t *testing.T) {
	t.Parallel()

	valid := Tag{Name: "Politics"}
	assert.NoError(t, valid.Validate())

	empty := Tag{}
	assert.Error(t, empty.Validate())

	short := Tag{Name: "a"}
	assert.Error(t, short.Validate())
}
