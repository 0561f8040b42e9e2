package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/alanjal-marks-api/internal/models"
	appErrors "github.com/noah-isme/alanjal-marks-api/pkg/errors"
)

func phaseFromQuery(c *gin.Context) (models.Phase, error) {
	raw := c.DefaultQuery("phase", "1")
	num, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "phase must be 1 or 2")
	}
	phase := models.Phase(num)
	if !phase.Valid() {
		return 0, appErrors.Clone(appErrors.ErrValidation, "phase must be 1 or 2")
	}
	return phase, nil
}

func domainFromQuery(c *gin.Context) (models.MarkDomain, error) {
	domain := models.MarkDomain(c.DefaultQuery("domain", string(models.DomainWeekly)))
	if !domain.Valid() {
		return "", appErrors.Clone(appErrors.ErrValidation, "domain must be weekly, assessment or exam")
	}
	return domain, nil
}
