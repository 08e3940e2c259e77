package services

import "github.com/Viniciustertuliano/photovault/models"

// Principal is the authenticated caller. A nil *Principal is anonymous.
type Principal struct {
	ID   uint
	Role models.Role
}

func PhotographerPrincipal(id uint) *Principal {
	return &Principal{ID: id, Role: models.RolePhotographer}
}

func ClientPrincipal(id uint) *Principal {
	return &Principal{ID: id, Role: models.RoleClient}
}

func (p *Principal) IsAuthenticated() bool {
	return p != nil && p.ID != 0 && p.Role != ""
}

func (p *Principal) IsClient() bool {
	return p.IsAuthenticated() && p.Role == models.RoleClient
}

// Owns reports whether p is the photographer owning folder.
func (p *Principal) Owns(folder models.Folder) bool {
	return p.IsAuthenticated() && p.Role == models.RolePhotographer && p.ID == folder.OwnerID
}
