package controllers

import (
	"net/http"
	"time"

	"pixdrop/internal/delivery/http/helpers"
)

// StatusConfig is the deployment state the status endpoint reports on.
type StatusConfig struct {
	HasGoogleCredentials bool
	HasRefreshToken      bool
	HasRedis             bool
	DefaultFolderID      string
	DrivePublic          bool
}

// StatusResponse describes which pieces of the deployment are configured.
type StatusResponse struct {
	GoogleCredentials bool   `json:"googleCredentials"`
	RefreshToken      bool   `json:"refreshToken"`
	Redis             bool   `json:"redis"`
	DefaultFolderID   string `json:"defaultFolderId"`
	DrivePublic       bool   `json:"drivePublic"`
	AuthMethod        string `json:"authMethod"`
	Timestamp         string `json:"timestamp"`
}

type AdminController struct {
	Config StatusConfig
}

func NewAdminController(cfg StatusConfig) *AdminController {
	return &AdminController{Config: cfg}
}

// Status godoc
// @Summary Deployment status
// @Description Reports which credentials and settings are present, without exposing their values.
// @Tags admin
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the status report"
// @Router /api/admin/status [get]
func (c *AdminController) Status(w http.ResponseWriter, r *http.Request) {
	authMethod := "none"
	if c.Config.HasGoogleCredentials {
		authMethod = "oauth_refresh_token"
		if !c.Config.HasRefreshToken {
			authMethod = "oauth_pending_authorization"
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{
		GoogleCredentials: c.Config.HasGoogleCredentials,
		RefreshToken:      c.Config.HasRefreshToken,
		Redis:             c.Config.HasRedis,
		DefaultFolderID:   c.Config.DefaultFolderID,
		DrivePublic:       c.Config.DrivePublic,
		AuthMethod:        authMethod,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	})
}
