package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
	view    presenter
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) RegisterOrders(router *gin.RouterGroup) {
	router.GET("", h.listOrders)
	router.POST("", h.createOrder)
	router.GET("/:id", h.getOrder)
	router.PUT("/:id", h.updateOrder)
	router.PATCH("/:id", h.updateOrder)
	router.DELETE("/:id", h.deleteOrder)
}

func (h *BookingHandler) RegisterTickets(router *gin.RouterGroup) {
	router.GET("", h.listTickets)
	router.POST("", h.bookTicket)
	router.GET("/:id", h.getTicket)
	router.PUT("/:id", h.updateTicket)
	router.PATCH("/:id", h.updateTicket)
	router.DELETE("/:id", h.cancelTicket)
}

type orderRequest struct {
	User *int64 `json:"user"`
}

func (h *BookingHandler) listOrders(c *gin.Context) {
	p := getPagination(c)
	userIDs, ok := queryIDs(c, "user")
	if !ok {
		return
	}

	orders, total, err := h.service.ListOrders(c.Request.Context(), repository.OrderFilter{UserIDs: userIDs}, p.repo())
	if err != nil {
		writeError(c, err)
		return
	}
	writeList(c, p, total, project(orders, h.view.order))
}

func (h *BookingHandler) getOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.order(*order))
}

// createOrder opens an order for the caller. Staff may open one on behalf
// of another user; created_at is always set by the server.
func (h *BookingHandler) createOrder(c *gin.Context) {
	principal, ok := currentUser(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "not_authenticated", "authentication credentials were not provided")
		return
	}

	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, err)
		return
	}

	userID := principal.UserID
	if principal.IsStaff && req.User != nil {
		userID = *req.User
	}

	order, err := h.service.CreateOrder(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.view.order(*order))
}

func (h *BookingHandler) updateOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req orderRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.User == nil {
		if !partial(c) {
			writeError(c, &domain.ValidationError{
				Kind:   domain.ErrInvalidField,
				Fields: map[string]string{"user": "this field is required"},
			})
			return
		}
		h.getOrder(c)
		return
	}

	order, err := h.service.UpdateOrder(c.Request.Context(), id, *req.User)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.order(*order))
}

func (h *BookingHandler) deleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteOrder(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// seatValue accepts a seat number (1..10) or its letter (A..J).
type seatValue int

func (s *seatValue) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return err
		}
		seat, ok := domain.ParseSeatLabel(strings.ToUpper(label))
		if !ok {
			return fmt.Errorf("%w: %q is not a valid seat", domain.ErrInvalidField, label)
		}
		*s = seatValue(seat)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = seatValue(n)
	return nil
}

type ticketRequest struct {
	Flight *int64     `json:"flight"`
	Order  *int64     `json:"order"`
	Row    *int       `json:"row"`
	Seat   *seatValue `json:"seat"`
}

func (r ticketRequest) apply(t *domain.Ticket) {
	setInt64(&t.FlightID, r.Flight)
	setInt64(&t.OrderID, r.Order)
	if r.Row != nil {
		t.Row = *r.Row
	}
	if r.Seat != nil {
		t.Seat = int(*r.Seat)
	}
}

func (h *BookingHandler) listTickets(c *gin.Context) {
	p := getPagination(c)
	orderIDs, ok := queryIDs(c, "order")
	if !ok {
		return
	}
	flightIDs, ok := queryIDs(c, "flight")
	if !ok {
		return
	}
	filter := repository.TicketFilter{OrderIDs: orderIDs, FlightIDs: flightIDs}

	tickets, total, err := h.service.ListTickets(c.Request.Context(), filter, p.repo())
	if err != nil {
		writeError(c, err)
		return
	}
	writeList(c, p, total, project(tickets, func(t domain.Ticket) ticketResponse {
		return h.view.ticket(t, viewList)
	}))
}

func (h *BookingHandler) getTicket(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ticket, err := h.service.GetTicket(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.ticket(*ticket, viewDetail))
}

func (h *BookingHandler) bookTicket(c *gin.Context) {
	var req ticketRequest
	if !bindJSON(c, &req) {
		return
	}
	ticket := domain.Ticket{}
	req.apply(&ticket)

	if err := h.service.BookTicket(c.Request.Context(), &ticket); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.view.ticket(ticket, viewBase))
}

func (h *BookingHandler) updateTicket(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ticketRequest
	if !bindJSON(c, &req) {
		return
	}

	ticket := &domain.Ticket{ID: id}
	if partial(c) {
		var err error
		if ticket, err = h.service.GetTicket(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
	}
	req.apply(ticket)

	if err := h.service.UpdateTicket(c.Request.Context(), ticket); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view.ticket(*ticket, viewBase))
}

func (h *BookingHandler) cancelTicket(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.CancelTicket(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
