package handlers

import (
	"net/http"

	"github.com/Viniciustertuliano/photovault/middleware"
	"github.com/Viniciustertuliano/photovault/utils"

	"github.com/gin-gonic/gin"
)

type FolderRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

func ListFolders(c *gin.Context) {
	list, err := getServices().Folder.ListOwned(c.Request.Context(), middleware.Principal(c))
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, list)
}

func CreateFolder(c *gin.Context) {
	var req FolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Folder name is required")
		return
	}

	desc, err := getServices().Folder.Create(c.Request.Context(), middleware.Principal(c), req.Name)
	if respondServiceError(c, err) {
		return
	}
	utils.Created(c, desc)
}

func GetFolder(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "folder")
	if !ok {
		return
	}

	desc, err := getServices().Folder.Get(c.Request.Context(), middleware.Principal(c), id)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, desc)
}

func RenameFolder(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "folder")
	if !ok {
		return
	}

	var req FolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Folder name is required")
		return
	}

	desc, err := getServices().Folder.Rename(c.Request.Context(), middleware.Principal(c), id, req.Name)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, desc)
}

// DeleteFolder removes the folder with its files and share links.
func DeleteFolder(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "folder")
	if !ok {
		return
	}

	if respondServiceError(c, getServices().Folder.Delete(c.Request.Context(), middleware.Principal(c), id)) {
		return
	}
	utils.NoContent(c)
}
