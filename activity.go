/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

// ActivityType distinguishes how an activity's Name should be rendered in
// a presence ("Playing X", "Streaming X", ...).
//
// Grounded on original_source/src/model/activity.rs.
type ActivityType uint8

const (
	ActivityTypePlaying   ActivityType = 0
	ActivityTypeStreaming ActivityType = 1
	ActivityTypeListening ActivityType = 2
	ActivityTypeWatching  ActivityType = 3
	ActivityTypeCustom    ActivityType = 4
	ActivityTypeCompeting ActivityType = 5
)

// Activity is a single entry in a presence update's activities list.
type Activity struct {
	Kind ActivityType `json:"type"`
	Name string       `json:"name"`
}

func NewPlayingActivity(name string) Activity   { return Activity{Kind: ActivityTypePlaying, Name: name} }
func NewStreamingActivity(name string) Activity { return Activity{Kind: ActivityTypeStreaming, Name: name} }
func NewListeningActivity(name string) Activity { return Activity{Kind: ActivityTypeListening, Name: name} }
func NewWatchingActivity(name string) Activity  { return Activity{Kind: ActivityTypeWatching, Name: name} }
func NewCustomActivity(name string) Activity    { return Activity{Kind: ActivityTypeCustom, Name: name} }
func NewCompetingActivity(name string) Activity { return Activity{Kind: ActivityTypeCompeting, Name: name} }

// Status is the presence status sent in a PresenceUpdate payload.
//
// Grounded on original_source/src/gateway/status.rs.
type Status string

const (
	StatusOnline       Status = "online"
	StatusDoNotDisturb Status = "dnd"
	StatusIdle         Status = "idle"
	StatusInvisible    Status = "invisible"
	StatusOffline      Status = "offline"
)
