package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"saganowatch/internal/models"
	"saganowatch/pkg/sagano"
	"saganowatch/pkg/watch"
)

// ListStations returns the four railway stops in line order
func (h *HandlerService) ListStations(c *gin.Context) {
	stations := sagano.Stations()
	views := make([]models.StationView, len(stations))
	for i, st := range stations {
		views[i] = models.StationView{Key: st.Key, Name: st.Name}
	}
	c.JSON(http.StatusOK, views)
}

// GetWatch returns the watch state for a chat
func (h *HandlerService) GetWatch(c *gin.Context) {
	chatID, err := parseChatID(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	state := h.registry.Get(chatID)
	if state == nil {
		HandleError(c, NewNotFoundError("no watch state for chat", nil))
		return
	}

	c.JSON(http.StatusOK, watchView(state))
}

// ListWatches returns every chat's watch state
func (h *HandlerService) ListWatches(c *gin.Context) {
	subjects := h.registry.Snapshot()
	views := make([]models.WatchView, len(subjects))
	for i, s := range subjects {
		views[i] = watchView(s)
	}
	c.JSON(http.StatusOK, views)
}

// CreateWatch starts watching a date for a chat
func (h *HandlerService) CreateWatch(c *gin.Context) {
	var req models.MonitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, NewBadRequestError("invalid request body", err))
		return
	}

	if err := h.registry.Monitor(req.ChatID, req.Date); err != nil {
		HandleError(c, NewBadRequestError(err.Error(), nil))
		return
	}

	c.JSON(http.StatusCreated, watchView(h.registry.Get(req.ChatID)))
}

// DeleteWatch stops watching one date, or everything when no date is given
func (h *HandlerService) DeleteWatch(c *gin.Context) {
	chatID, err := parseChatID(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	date := c.Param("date")
	if date == "" {
		stopped := h.registry.StopAll(chatID)
		c.JSON(http.StatusOK, gin.H{"stopped": stopped})
		return
	}

	if !h.registry.StopDate(chatID, date) {
		HandleError(c, NewNotFoundError(fmt.Sprintf("chat was not watching %s", date), nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{"stopped": []string{date}})
}

func parseChatID(c *gin.Context) (int64, error) {
	raw := c.Query("chat_id")
	if raw == "" {
		return 0, fmt.Errorf("%w: chat_id is required", ErrInvalidParam)
	}
	chatID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: chat_id must be an integer", ErrInvalidParam)
	}
	return chatID, nil
}

func watchView(s *watch.WatchState) models.WatchView {
	v := models.WatchView{
		ChatID:          s.ChatID,
		Dates:           s.Dates,
		Departure:       s.Departure.Name,
		Arrival:         s.Arrival.Name,
		Seats:           s.Seats,
		IntervalMinutes: int(s.CheckInterval / time.Minute),
		SummaryMinutes:  int(s.SummaryInterval / time.Minute),
	}
	if !s.LastCheckAt.IsZero() {
		t := s.LastCheckAt
		v.LastCheckAt = &t
	}
	if !s.LastSummaryAt.IsZero() {
		t := s.LastSummaryAt
		v.LastSummaryAt = &t
	}
	return v
}
