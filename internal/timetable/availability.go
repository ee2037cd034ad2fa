package timetable

import (
	"context"
	"sync"
	"time"

	appLog "tussenuur/internal/log"
	"tussenuur/internal/metrics"
)

// SlotSource produces the booked slot tokens for one room on one day.
// *Client is the production implementation.
type SlotSource interface {
	FetchDaySlots(ctx context.Context, room string, week int, day string) ([]string, error)
}

// RoomStatus is the tagged availability verdict for a single room.
//
// Degraded marks rooms whose schedule could not be obtained: their booking
// state is unknown and Open reflects the configured degrade policy rather
// than a verified schedule.
type RoomStatus struct {
	Room        string
	Open        bool
	Degraded    bool
	Reason      string
	BookedSlots []string
}

// Policy controls aggregation behavior.
type Policy struct {
	// DegradedRoomsOpen treats rooms with an unavailable or unparsable
	// schedule as open. When false such rooms are listed closed.
	DegradedRoomsOpen bool
}

// IsOpen reports whether a room with the given booked slots is free for
// every one of the requested slot tokens. Bookings are 15-minute tokens, so
// checking a whole free hour means checking each of its sub-slots.
// Membership, not count, is meaningful; duplicates are fine.
func IsOpen(bookedSlots, slotStarts []string) bool {
	for _, s := range bookedSlots {
		for _, want := range slotStarts {
			if s == want {
				return false
			}
		}
	}
	return true
}

// CheckRooms fetches all rooms' schedules concurrently and reduces each to
// an open/closed verdict for the given slot tokens. One room's failure
// never affects another: that room degrades per policy while the rest of
// the batch proceeds normally.
func CheckRooms(ctx context.Context, src SlotSource, rooms []string, week int, day string, slotStarts []string, policy Policy) []RoomStatus {
	statuses := make([]RoomStatus, len(rooms))

	var wg sync.WaitGroup
	for i, room := range rooms {
		wg.Add(1)
		go func() {
			defer wg.Done()

			started := time.Now()
			slots, err := src.FetchDaySlots(ctx, room, week, day)
			metrics.ObserveRoomFetch(time.Since(started), err == nil)

			if err != nil {
				appLog.Error("room schedule unavailable", err, "room", room, "week", week, "day", day)
				statuses[i] = RoomStatus{
					Room:     room,
					Open:     policy.DegradedRoomsOpen,
					Degraded: true,
					Reason:   err.Error(),
				}
				return
			}

			statuses[i] = RoomStatus{
				Room:        room,
				Open:        IsOpen(slots, slotStarts),
				BookedSlots: slots,
			}
		}()
	}
	wg.Wait()

	return statuses
}
