package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Viniciustertuliano/photovault/config"
	"github.com/Viniciustertuliano/photovault/middleware"
	"github.com/Viniciustertuliano/photovault/utils"

	"github.com/gin-gonic/gin"
)

type createShareLinkRequest struct {
	ExpirationDays json.RawMessage `json:"expirationDays"`
}

// parseExpirationDays distinguishes an omitted field (configured default) from
// an explicit null (never expires).
func parseExpirationDays(body []byte) (*int, error) {
	days := config.AppConfig.Share.DefaultExpirationDays
	if len(bytes.TrimSpace(body)) == 0 {
		return &days, nil
	}

	var req createShareLinkRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	raw := bytes.TrimSpace(req.ExpirationDays)
	switch {
	case len(raw) == 0:
		return &days, nil
	case bytes.Equal(raw, []byte("null")):
		return nil, nil
	}

	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, err
	}
	return &days, nil
}

func CreateShareLink(c *gin.Context) {
	folderID, ok := parseIDParam(c, "id", "folder")
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Could not read request body")
		return
	}
	days, err := parseExpirationDays(body)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "expirationDays must be an integer or null")
		return
	}

	desc, err := getServices().ShareLink.Create(c.Request.Context(), middleware.Principal(c), folderID, days)
	if respondServiceError(c, err) {
		return
	}
	utils.Created(c, desc)
}

func ListFolderShareLinks(c *gin.Context) {
	folderID, ok := parseIDParam(c, "id", "folder")
	if !ok {
		return
	}

	list, err := getServices().ShareLink.ListByFolder(c.Request.Context(), middleware.Principal(c), folderID)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, list)
}

// AccessShareLink resolves the token in the :id segment and returns the shared folder.
func AccessShareLink(c *gin.Context) {
	access, err := getServices().ShareLink.AccessByToken(c.Request.Context(), c.Param("id"), middleware.Principal(c))
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, access)
}

func RevokeShareLink(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "share link")
	if !ok {
		return
	}

	if respondServiceError(c, getServices().ShareLink.Revoke(c.Request.Context(), middleware.Principal(c), id)) {
		return
	}
	utils.NoContent(c)
}

func RenewShareLink(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "share link")
	if !ok {
		return
	}

	days := config.AppConfig.Share.DefaultExpirationDays
	if raw := c.Query("additionalDays"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "additionalDays must be an integer")
			return
		}
		days = parsed
	}

	desc, err := getServices().ShareLink.Renew(c.Request.Context(), middleware.Principal(c), id, days)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, desc)
}

func ListShareLinkAccesses(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "share link")
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "limit must be an integer")
		return
	}

	list, err := getServices().ShareLink.RecentAccesses(c.Request.Context(), middleware.Principal(c), id, limit)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, list)
}
