package services

import (
	"testing"

	"github.com/Viniciustertuliano/photovault/models"

	"github.com/stretchr/testify/assert"
)

func TestPrincipalOwnership(t *testing.T) {
	folder := models.Folder{ID: 1, OwnerID: 3}

	var anonymous *Principal
	assert.False(t, anonymous.IsAuthenticated())
	assert.False(t, anonymous.Owns(folder))

	assert.True(t, PhotographerPrincipal(3).Owns(folder))
	assert.False(t, PhotographerPrincipal(4).Owns(folder))
	assert.False(t, ClientPrincipal(3).Owns(folder), "a client sharing the owner's id must not own the folder")
	assert.True(t, ClientPrincipal(3).IsClient())
	assert.False(t, (&Principal{Role: models.RolePhotographer}).IsAuthenticated())
}
