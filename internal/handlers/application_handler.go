package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"arizabot/internal/models"
	"arizabot/internal/repositories"
	"arizabot/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ApplicationHandler struct {
	Repo   *repositories.ApplicationRepository
	Export *services.ExportService
	log    *zap.Logger
}

func NewApplicationHandler(repo *repositories.ApplicationRepository, export *services.ExportService, log *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{Repo: repo, Export: export, log: log}
}

// List returns every application, newest first.
func (h *ApplicationHandler) List(c *gin.Context) {
	apps := h.Repo.ReadAll()
	if apps == nil {
		apps = []*models.Application{} // empty store serves [], not null
	}
	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Repo.Stats())
}

func (h *ApplicationHandler) Search(c *gin.Context) {
	results := h.Repo.Search(c.Query("q"))
	if results == nil {
		results = []*models.Application{}
	}
	c.JSON(http.StatusOK, results)
}

// Download re-fetches one application's PDF from the messaging channel and
// serves it as an attachment under its original name.
func (h *ApplicationHandler) Download(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	path, name, err := h.Export.Download(id)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			return
		}
		h.log.Error("download application", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error downloading file"})
		return
	}
	c.FileAttachment(path, name)
}

// ExportXLSX streams the formatted spreadsheet of all applications.
func (h *ApplicationHandler) ExportXLSX(c *gin.Context) {
	path, err := h.Export.Export()
	if err != nil {
		if errors.Is(err, services.ErrNoApplications) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No applications found"})
			return
		}
		h.log.Error("export applications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating export"})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
