package controller

import (
	"bytes"
	"io"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"trainingcenter_backend/internals/constants"
	helper "trainingcenter_backend/internals/helpers"
	helperOSS "trainingcenter_backend/internals/helpers/oss"
)

// POST /api/institutions/:id/logo  (multipart field "logo")
func (ctl *InstitutionController) UploadLogo(c *fiber.Ctx) error {
	if ctl.Storage == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "object storage is not configured")
	}
	m, err := ctl.find(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	fh, err := c.FormFile("logo")
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"logo": {"is required"}})
	}
	if fh.Size > constants.MaxLogoBytes {
		return helper.JsonValidationError(c, map[string][]string{"logo": {"must be at most 5 MB"}})
	}
	if constants.ImageContentTypeFromExt(fh.Filename) == "" {
		return helper.JsonValidationError(c, map[string][]string{"logo": {helperOSS.ErrUnsupportedImage.Error()}})
	}
	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "cannot read upload")
	}
	defer f.Close()
	raw, err := io.ReadAll(io.LimitReader(f, constants.MaxLogoBytes+1))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "cannot read upload")
	}

	webpBytes, err := helperOSS.LogoToWebP(raw, fh.Filename, constants.LogoMaxSidePx)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"logo": {err.Error()}})
	}

	key := helperOSS.BuildObjectKey("institutions/"+m.InstitutionID.String(), "logo", ".webp", time.Now())
	if err := ctl.Storage.Put(c.UserContext(), key, bytes.NewReader(webpBytes), "image/webp"); err != nil {
		log.Printf("[ERROR] logo upload %s: %v", m.InstitutionID, err)
		return helper.JsonError(c, fiber.StatusBadGateway, "logo upload failed")
	}

	oldKey := m.InstitutionLogoKey
	url := ctl.Storage.PublicURL(key)
	m.InstitutionLogoKey = &key
	m.InstitutionLogoURL = &url
	if err := ctl.DB.WithContext(c.UserContext()).Model(m).Updates(map[string]any{
		"institution_logo_key": key,
		"institution_logo_url": url,
	}).Error; err != nil {
		_ = ctl.Storage.Delete(c.UserContext(), key)
		return helper.JsonDBError(c, err)
	}

	if oldKey != nil && *oldKey != "" {
		if err := ctl.Storage.Delete(c.UserContext(), *oldKey); err != nil && !helperOSS.IsNotFound(err) {
			log.Printf("[WARN] old logo %s not removed: %v", *oldKey, err)
		}
	}
	return helper.JsonUpdated(c, "logo updated", m)
}
