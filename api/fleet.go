package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/fleet"
	"github.com/gin-gonic/gin"
)

type FleetHandler struct {
	service fleet.FleetUseCase
	view    presenter
}

func NewFleetHandler(service fleet.FleetUseCase, media URLResolver) *FleetHandler {
	return &FleetHandler{service: service, view: presenter{media: media}}
}

func (h *FleetHandler) Register(router *gin.RouterGroup) {
	types := router.Group("/airplane-types")
	types.GET("", h.listTypes)
	types.POST("", h.createType)
	types.GET("/:id", h.getType)
	types.PUT("/:id", h.updateType)
	types.PATCH("/:id", h.updateType)
	types.DELETE("/:id", h.deleteType)

	airplanes := router.Group("/airplanes")
	airplanes.GET("", h.listAirplanes)
	airplanes.POST("", h.createAirplane)
	airplanes.GET("/:id", h.getAirplane)
	airplanes.PUT("/:id", h.updateAirplane)
	airplanes.PATCH("/:id", h.updateAirplane)
	airplanes.DELETE("/:id", h.deleteAirplane)
	airplanes.POST("/:id/upload-image", h.uploadImage)
}

type airplaneTypeRequest struct {
	Name *string `json:"name" binding:"omitempty,max=255"`
}

func (h *FleetHandler) listTypes(c *gin.Context) {
	p := getPagination(c)
	types, total, err := h.service.ListAirplaneTypes(c.Request.Context(), c.Query("name"), p.repo())
	if err != nil {
		writeError(c, err)
		return
	}
	writeList(c, p, total, project(types, h.view.airplaneType))
}

func (h *FleetHandler) getType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.service.GetAirplaneType(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.airplaneType(*t))
}

func (h *FleetHandler) createType(c *gin.Context) {
	var req airplaneTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	t := domain.AirplaneType{}
	setString(&t.Name, req.Name)

	if err := h.service.CreateAirplaneType(c.Request.Context(), &t); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.view.airplaneType(t))
}

func (h *FleetHandler) updateType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req airplaneTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	t := &domain.AirplaneType{ID: id}
	if partial(c) {
		var err error
		if t, err = h.service.GetAirplaneType(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
	}
	setString(&t.Name, req.Name)

	if err := h.service.UpdateAirplaneType(c.Request.Context(), t); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.airplaneType(*t))
}

func (h *FleetHandler) deleteType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAirplaneType(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type airplaneRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=255"`
	Rows         *int    `json:"rows" binding:"omitempty,min=1"`
	SeatsInRow   *int    `json:"seats_in_row" binding:"omitempty,min=1"`
	AirplaneType *int64  `json:"airplane_type"`
}

func (r airplaneRequest) apply(a *domain.Airplane) {
	setString(&a.Name, r.Name)
	setInt64(&a.AirplaneTypeID, r.AirplaneType)
	if r.Rows != nil {
		a.Rows = *r.Rows
	}
	if r.SeatsInRow != nil {
		a.SeatsInRow = *r.SeatsInRow
	}
}

func (h *FleetHandler) listAirplanes(c *gin.Context) {
	p := getPagination(c)
	typeIDs, ok := queryIDs(c, "airplane_type")
	if !ok {
		return
	}
	filter := repository.AirplaneFilter{Name: c.Query("name"), TypeIDs: typeIDs}

	airplanes, total, err := h.service.ListAirplanes(c.Request.Context(), filter, p.repo())
	if err != nil {
		writeError(c, err)
		return
	}
	writeList(c, p, total, project(airplanes, func(a domain.Airplane) any {
		return h.view.airplane(a, viewList)
	}))
}

func (h *FleetHandler) getAirplane(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	airplane, err := h.service.GetAirplane(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.airplane(*airplane, viewDetail))
}

func (h *FleetHandler) createAirplane(c *gin.Context) {
	var req airplaneRequest
	if !bindJSON(c, &req) {
		return
	}
	airplane := domain.Airplane{}
	req.apply(&airplane)

	if err := h.service.CreateAirplane(c.Request.Context(), &airplane); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.view.airplane(airplane, viewBase))
}

func (h *FleetHandler) updateAirplane(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req airplaneRequest
	if !bindJSON(c, &req) {
		return
	}

	// Updates never touch the stored image; it is only replaced through upload-image.
	current, err := h.service.GetAirplane(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	airplane := &domain.Airplane{ID: id, Image: current.Image}
	if partial(c) {
		airplane = current
	}
	req.apply(airplane)

	if err := h.service.UpdateAirplane(c.Request.Context(), airplane); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.airplane(*airplane, viewBase))
}

func (h *FleetHandler) deleteAirplane(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAirplane(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FleetHandler) uploadImage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:  "no file was submitted",
			Code:   "invalid_field",
			Fields: map[string]string{"image": "this field is required"},
		})
		return
	}
	file, err := header.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer file.Close()

	airplane, err := h.service.UploadAirplaneImage(c.Request.Context(), id, header.Filename, file)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.airplane(*airplane, viewImage))
}
