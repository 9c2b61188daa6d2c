package model

import "time"

// Cluster is a labeled grouping of post-its on the canvas. Deleting a
// cluster unassigns its post-its, it never deletes them.
type Cluster struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	SessionID string    `json:"sessionId" bson:"sessionId"`
	Label     string    `json:"label" bson:"label"`
	PositionX float64   `json:"positionX" bson:"positionX"`
	PositionY float64   `json:"positionY" bson:"positionY"`
	Width     float64   `json:"width,omitempty" bson:"width,omitempty"`
	Height    float64   `json:"height,omitempty" bson:"height,omitempty"`
	Color     string    `json:"color,omitempty" bson:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// ClusterUpdate carries the optional fields of a cluster update. Nil fields
// are left untouched.
type ClusterUpdate struct {
	Label     *string  `json:"label,omitempty"`
	PositionX *float64 `json:"positionX,omitempty"`
	PositionY *float64 `json:"positionY,omitempty"`
	Width     *float64 `json:"width,omitempty"`
	Height    *float64 `json:"height,omitempty"`
	Color     *string  `json:"color,omitempty"`
}
