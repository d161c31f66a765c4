package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/foodgram-project/backend/database"
	"github.com/foodgram-project/backend/errs"
	"github.com/foodgram-project/backend/models"
	"github.com/foodgram-project/backend/services"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tagRepo   *database.TagRepo
}

func newTagHandler(tagRepo *database.TagRepo) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tagRepo:   tagRepo,
	}
}

func tagView(tag *models.Tag) services.TagView {
	return services.TagView{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: models.TagColor,
		Slug:  tag.Slug,
	}
}

// getTags lists all tags
func (h tagHandler) getTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tags", err))
			return
		}

		views := make([]services.TagView, 0, len(tags))
		for _, tag := range tags {
			views = append(views, tagView(tag))
		}
		h.responder.WriteJSON(w, views)
	}
}

// getTag returns one tag
func (h tagHandler) getTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tag, err := h.tagRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tag", err))
			return
		}
		if tag == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("tag not found"))
			return
		}

		h.responder.WriteJSON(w, tagView(tag))
	}
}
