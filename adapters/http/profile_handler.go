package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "github.com/vuhoang/dev-connector/internal/application/usecase/profile"
	"github.com/vuhoang/dev-connector/pkg/apperror"
)

type ProfileHandler struct {
	getUseCase        *profileUC.GetProfileUseCase
	upsertUseCase     *profileUC.UpsertProfileUseCase
	experienceUseCase *profileUC.ExperienceUseCase
	educationUseCase  *profileUC.EducationUseCase
	deleteUseCase     *profileUC.DeleteProfileUseCase
}

func NewProfileHandler(
	getUC *profileUC.GetProfileUseCase,
	upsertUC *profileUC.UpsertProfileUseCase,
	experienceUC *profileUC.ExperienceUseCase,
	educationUC *profileUC.EducationUseCase,
	deleteUC *profileUC.DeleteProfileUseCase,
) *ProfileHandler {
	return &ProfileHandler{
		getUseCase:        getUC,
		upsertUseCase:     upsertUC,
		experienceUseCase: experienceUC,
		educationUseCase:  educationUC,
		deleteUseCase:     deleteUC,
	}
}

func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	principal, ok := PrincipalFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("principal not found in context", nil))
		return
	}

	p, err := h.getUseCase.GetOwn(c.Request.Context(), principal.ID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) GetProfileByHandle(c *gin.Context) {
	p, err := h.getUseCase.GetByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) GetProfileByUserID(c *gin.Context) {
	p, err := h.getUseCase.GetByUserID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	ps, err := h.getUseCase.ListAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTOs(ps))
}

func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	principal, ok := PrincipalFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("principal not found in context", nil))
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile upsert", err))
		return
	}

	input := profileUC.UpsertProfileInput{
		OwnerID:        principal.ID,
		Handle:         req.Handle,
		Status:         req.Status,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	}

	output, err := h.upsertUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	principal, ok := PrincipalFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("principal not found in context", nil))
		return
	}

	var req AddExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for experience", err))
		return
	}

	p, err := h.experienceUseCase.Add(c.Request.Context(), profileUC.AddExperienceInput{
		OwnerID:     principal.ID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) DeleteExperience(c *gin.Context) {
	principal, ok := PrincipalFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("principal not found in context", nil))
		return
	}

	entryID, err := uuid.Parse(c.Param("exp_id"))
	if err != nil {
		c.Error(apperror.NewNotFound("experience", "Experience not found"))
		return
	}

	p, err := h.experienceUseCase.Delete(c.Request.Context(), principal.ID, entryID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	principal, ok := PrincipalFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("principal not found in context", nil))
		return
	}

	var req AddEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for education", err))
		return
	}

	p, err := h.educationUseCase.Add(c.Request.Context(), profileUC.AddEducationInput{
		OwnerID:      principal.ID,
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) DeleteEducation(c *gin.Context) {
	principal, ok := PrincipalFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("principal not found in context", nil))
		return
	}

	entryID, err := uuid.Parse(c.Param("edu_id"))
	if err != nil {
		c.Error(apperror.NewNotFound("education", "Education not found"))
		return
	}

	p, err := h.educationUseCase.Delete(c.Request.Context(), principal.ID, entryID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	principal, ok := PrincipalFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("principal not found in context", nil))
		return
	}

	if err := h.deleteUseCase.DeleteProfile(c.Request.Context(), principal.ID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Profile deleted"})
}

func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	principal, ok := PrincipalFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("principal not found in context", nil))
		return
	}

	if err := h.deleteUseCase.DeleteAccount(c.Request.Context(), principal.ID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Account deleted"})
}
