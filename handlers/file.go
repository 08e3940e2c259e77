package handlers

import (
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Viniciustertuliano/photovault/middleware"
	"github.com/Viniciustertuliano/photovault/utils"

	"github.com/gin-gonic/gin"
)

// UploadFile stores the multipart field "file" in the folder.
func UploadFile(c *gin.Context) {
	folderID, ok := parseIDParam(c, "id", "folder")
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Multipart field 'file' is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}
	defer file.Close()

	desc, err := getServices().File.Upload(
		c.Request.Context(),
		middleware.Principal(c),
		folderID,
		file,
		header.Filename,
		header.Size,
		header.Header.Get("Content-Type"),
	)
	if respondServiceError(c, err) {
		return
	}
	utils.Created(c, desc)
}

func ListFolderFiles(c *gin.Context) {
	folderID, ok := parseIDParam(c, "id", "folder")
	if !ok {
		return
	}

	list, err := getServices().File.ListByFolder(c.Request.Context(), folderID)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, list)
}

// DownloadFile streams a file authorized by either ?shareToken= or the caller's
// ownership.
func DownloadFile(c *gin.Context) {
	fileID, ok := parseIDParam(c, "id", "file")
	if !ok {
		return
	}

	svc := getServices()
	file, err := svc.Gate.AuthorizeDownload(c.Request.Context(), fileID, c.Query("shareToken"), middleware.Principal(c))
	if respondServiceError(c, err) {
		return
	}

	content, err := svc.File.Read(c.Request.Context(), file.ID)
	if respondServiceError(c, err) {
		return
	}
	defer content.Body.Close()

	contentType := content.File.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", attachmentDisposition(content.File.Name))
	c.Header("Content-Length", strconv.FormatInt(content.File.Size, 10))
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, content.Body)
}

func GetThumbnail(c *gin.Context) {
	fileID, ok := parseIDParam(c, "id", "file")
	if !ok {
		return
	}

	svc := getServices()
	file, err := svc.Gate.AuthorizeDownload(c.Request.Context(), fileID, c.Query("shareToken"), middleware.Principal(c))
	if respondServiceError(c, err) {
		return
	}

	thumb, err := svc.Thumbnail.Open(c.Request.Context(), file)
	if respondServiceError(c, err) {
		return
	}
	defer thumb.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Header("Cache-Control", "private, max-age=86400")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, thumb)
}

func DeleteFile(c *gin.Context) {
	fileID, ok := parseIDParam(c, "id", "file")
	if !ok {
		return
	}

	err := getServices().File.Delete(c.Request.Context(), middleware.Principal(c), fileID)
	if respondServiceError(c, err) {
		return
	}
	utils.NoContent(c)
}

var quotedNameEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// attachmentDisposition quotes name as filename=. Names with non-ASCII or control
// characters get an ASCII fallback plus an RFC 5987 filename* parameter.
func attachmentDisposition(name string) string {
	plain := true
	for i := 0; i < len(name); i++ {
		if name[i] < 0x20 || name[i] >= utf8.RuneSelf || name[i] == 0x7f {
			plain = false
			break
		}
	}
	if plain {
		return `attachment; filename="` + quotedNameEscaper.Replace(name) + `"`
	}

	fallback := strings.Map(func(r rune) rune {
		if r < 0x20 || r >= utf8.RuneSelf || r == 0x7f {
			return '_'
		}
		return r
	}, name)
	return `attachment; filename="` + quotedNameEscaper.Replace(fallback) + `"; filename*=UTF-8''` + url.PathEscape(name)
}
