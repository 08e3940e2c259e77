package handlers

import (
	"github.com/Viniciustertuliano/photovault/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API under /api. Path wildcards are named :id at every
// position so gin can share tree nodes between routes; for GET
// /share-links/:id/access the segment carries the share token.
func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.GET("/health", HealthCheck)

	public := api.Group("")
	public.Use(middleware.OptionalAuth())
	{
		public.GET("/folders/:id/files", ListFolderFiles)
		public.GET("/files/:id", DownloadFile)
		public.GET("/files/:id/thumbnail", GetThumbnail)
		public.GET("/share-links/:id/access", AccessShareLink)
	}

	protected := api.Group("")
	protected.Use(middleware.RequireAuth())
	{
		protected.GET("/folders", ListFolders)
		protected.POST("/folders", CreateFolder)
		protected.GET("/folders/:id", GetFolder)
		protected.PUT("/folders/:id", RenameFolder)
		protected.DELETE("/folders/:id", DeleteFolder)

		protected.POST("/folders/:id/files", UploadFile)
		protected.DELETE("/files/:id", DeleteFile)

		protected.POST("/folders/:id/share-links", CreateShareLink)
		protected.GET("/folders/:id/share-links", ListFolderShareLinks)
		protected.DELETE("/share-links/:id", RevokeShareLink)
		protected.PATCH("/share-links/:id", RenewShareLink)
		protected.GET("/share-links/:id/accesses", ListShareLinkAccesses)
	}
}
