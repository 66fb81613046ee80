package rooms

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"

	"noteroom-server/core"
)

// HandleList reports every room the relay has seen, with live member counts
// and whether a document has been set. Rooms are never evicted, so this
// list only grows over the process lifetime.
func HandleList(lister core.RoomLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		infos, err := lister.ListRooms(r.Context())
		if err != nil {
			logrus.WithField("error", err).Error("Failed to list rooms")
			http.Error(w, "Failed to list rooms", http.StatusInternalServerError)
			return
		}

		if infos == nil {
			infos = []core.RoomInfo{}
		}

		render.JSON(w, r, infos)
	}
}
