package ulid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	assert.Len(t, id, 26)
	assert.True(t, ValidID(id))
	assert.NotEqual(t, id, GenerateID())
}

func TestValidID(t *testing.T) {
	assert.False(t, ValidID(""))
	assert.False(t, ValidID("not-a-ulid"))
	assert.True(t, ValidID(GenerateID()))
}

func TestMockGenerator(t *testing.T) {
	MockGenerator("01ARZ3NDEKTSV4RRFFQ69G5FAV")
	defer ResetGenerator()

	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", GenerateID())
	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", GenerateID())

	ResetGenerator()
	assert.NotEqual(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", GenerateID())
}
