package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/crew"
	"github.com/gin-gonic/gin"
)

type CrewHandler struct {
	service crew.CrewUseCase
	view    presenter
}

func NewCrewHandler(service crew.CrewUseCase, media URLResolver) *CrewHandler {
	return &CrewHandler{service: service, view: presenter{media: media}}
}

func (h *CrewHandler) Register(router *gin.RouterGroup) {
	positions := router.Group("/positions")
	positions.GET("", h.listPositions)
	positions.POST("", h.createPosition)
	positions.GET("/:id", h.getPosition)
	positions.PUT("/:id", h.updatePosition)
	positions.PATCH("/:id", h.updatePosition)
	positions.DELETE("/:id", h.deletePosition)

	members := router.Group("/crew")
	members.GET("", h.listCrew)
	members.POST("", h.createCrew)
	members.GET("/:id", h.getCrew)
	members.PUT("/:id", h.updateCrew)
	members.PATCH("/:id", h.updateCrew)
	members.DELETE("/:id", h.deleteCrew)
	members.POST("/:id/upload-image", h.uploadPhoto)
}

type positionRequest struct {
	Name *string `json:"name" binding:"omitempty,max=255"`
}

func (h *CrewHandler) listPositions(c *gin.Context) {
	p := getPagination(c)
	positions, total, err := h.service.ListPositions(c.Request.Context(), c.Query("name"), p.repo())
	if err != nil {
		writeError(c, err)
		return
	}
	writeList(c, p, total, project(positions, h.view.position))
}

func (h *CrewHandler) getPosition(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	position, err := h.service.GetPosition(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.position(*position))
}

func (h *CrewHandler) createPosition(c *gin.Context) {
	var req positionRequest
	if !bindJSON(c, &req) {
		return
	}
	position := domain.Position{}
	setString(&position.Name, req.Name)

	if err := h.service.CreatePosition(c.Request.Context(), &position); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.view.position(position))
}

func (h *CrewHandler) updatePosition(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req positionRequest
	if !bindJSON(c, &req) {
		return
	}

	position := &domain.Position{ID: id}
	if partial(c) {
		var err error
		if position, err = h.service.GetPosition(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
	}
	setString(&position.Name, req.Name)

	if err := h.service.UpdatePosition(c.Request.Context(), position); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.position(*position))
}

func (h *CrewHandler) deletePosition(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeletePosition(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type crewRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=255"`
	LastName  *string `json:"last_name" binding:"omitempty,max=255"`
	Position  *int64  `json:"position"`
}

func (r crewRequest) apply(member *domain.Crew) {
	setString(&member.FirstName, r.FirstName)
	setString(&member.LastName, r.LastName)
	setInt64(&member.PositionID, r.Position)
}

func (h *CrewHandler) listCrew(c *gin.Context) {
	p := getPagination(c)
	positionIDs, ok := queryIDs(c, "position")
	if !ok {
		return
	}
	filter := repository.CrewFilter{
		FirstName:   c.Query("first_name"),
		LastName:    c.Query("last_name"),
		PositionIDs: positionIDs,
	}

	members, total, err := h.service.ListCrew(c.Request.Context(), filter, p.repo())
	if err != nil {
		writeError(c, err)
		return
	}
	writeList(c, p, total, project(members, func(m domain.Crew) any {
		return h.view.crew(m, viewList)
	}))
}

func (h *CrewHandler) getCrew(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	member, err := h.service.GetCrew(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.crew(*member, viewDetail))
}

func (h *CrewHandler) createCrew(c *gin.Context) {
	var req crewRequest
	if !bindJSON(c, &req) {
		return
	}
	member := domain.Crew{}
	req.apply(&member)

	if err := h.service.CreateCrew(c.Request.Context(), &member); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.view.crew(member, viewBase))
}

func (h *CrewHandler) updateCrew(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req crewRequest
	if !bindJSON(c, &req) {
		return
	}

	current, err := h.service.GetCrew(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	member := &domain.Crew{ID: id, Photo: current.Photo}
	if partial(c) {
		member = current
	}
	req.apply(member)

	if err := h.service.UpdateCrew(c.Request.Context(), member); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.crew(*member, viewBase))
}

func (h *CrewHandler) deleteCrew(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCrew(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CrewHandler) uploadPhoto(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:  "no file was submitted",
			Code:   "invalid_field",
			Fields: map[string]string{"photo": "this field is required"},
		})
		return
	}
	file, err := header.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer file.Close()

	member, err := h.service.UploadCrewPhoto(c.Request.Context(), id, header.Filename, file)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.crew(*member, viewImage))
}
