package core

import "context"

type (
	// MemberID identifies one connected client. It is assigned by the
	// transport at stream establishment and is unique among concurrently
	// open connections only.
	MemberID string

	// RoomInfo is a point-in-time view of one room, used by the HTTP API.
	RoomInfo struct {
		ID          string `json:"id"`
		MemberCount int    `json:"members"`
		HasDocument bool   `json:"hasDocument"`
	}

	RoomLister interface {
		ListRooms(ctx context.Context) ([]RoomInfo, error)
	}
)
