package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pressplan/pressplan/internal/item"
	"github.com/pressplan/pressplan/internal/label"
	"github.com/pressplan/pressplan/internal/models"
	"github.com/pressplan/pressplan/internal/monthjob"
	"github.com/pressplan/pressplan/internal/ordering"
)

// itemView is the wire form of a scheduled item. Label carries the effective
// label so clients never re-derive the legacy priority mapping.
type itemView struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	AssignedTo  string    `json:"assignedTo,omitempty"`
	ClientID    string    `json:"clientId"`
	Date        string    `json:"date"`
	IsExtra     bool      `json:"isExtra"`
	Kind        string    `json:"kind"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Label       string    `json:"label"`
	Status      string    `json:"status"`
	WorkID      string    `json:"workId,omitempty"`
	SortOrder   int       `json:"sortOrder"`
	Delegated   bool      `json:"delegated"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func viewOf(it *models.ScheduledItem) itemView {
	v := itemView{
		ID:          it.ID,
		OwnerID:     it.OwnerID,
		ClientID:    it.ClientID,
		Date:        it.Day().Format("2006-01-02"),
		IsExtra:     it.IsExtra,
		Kind:        it.Kind,
		Type:        it.Type,
		Title:       it.Title,
		Description: it.Description,
		Label:       label.Effective(it),
		Status:      it.Status,
		SortOrder:   it.SortOrder,
		Delegated:   it.Delegated(),
		UpdatedAt:   it.UpdatedAt,
	}
	if it.AssignedTo != nil {
		v.AssignedTo = *it.AssignedTo
	}
	if it.WorkID != nil {
		v.WorkID = *it.WorkID
	}
	return v
}

func viewsOf(items []models.ScheduledItem) []itemView {
	views := make([]itemView, len(items))
	for i := range items {
		views[i] = viewOf(&items[i])
	}
	return views
}

// httpStatus maps domain errors to response codes.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, item.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, item.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, item.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ordering.ErrInvalidOrder), errors.Is(err, monthjob.ErrAlreadyFilled):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	c.JSON(httpStatus(err), gin.H{"error": err.Error()})
}
